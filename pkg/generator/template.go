package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// TemplateOption configures LoadTemplates.
type TemplateOption func(*templateConfig)

type templateConfig struct {
	baseDir   string
	templates fs.FS
	extension string
}

// WithTemplateDir loads templates from a directory on disk.
func WithTemplateDir(dir string) TemplateOption {
	return func(cfg *templateConfig) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithTemplateFS loads templates from an fs.FS.
func WithTemplateFS(files fs.FS) TemplateOption {
	return func(cfg *templateConfig) {
		cfg.templates = files
	}
}

// WithTemplateExtension overrides the ".tpl" extension.
func WithTemplateExtension(ext string) TemplateOption {
	return func(cfg *templateConfig) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// Template is a pongo2 template rendering one declaration. The context
// exposes widget, column, label, default and has_default. Values are not
// HTML escaped and trailing newlines are trimmed.
type Template struct {
	name string
	tpl  *pongo2.Template
}

var _ Format = (*Template)(nil)

// ParseTemplate compiles an inline template.
func ParseTemplate(name, content string) (*Template, error) {
	tpl, err := pongo2.FromString(content)
	if err != nil {
		return nil, fmt.Errorf("generator: parse template %q: %w", name, err)
	}
	return &Template{name: name, tpl: tpl}, nil
}

// Render implements Format.
func (t *Template) Render(line Line) (string, error) {
	if t == nil || t.tpl == nil {
		return "", errors.New("generator: template is nil")
	}
	out, err := t.tpl.Execute(pongo2.Context{
		"widget":      pongo2.AsSafeValue(line.Widget),
		"column":      pongo2.AsSafeValue(line.Column),
		"label":       pongo2.AsSafeValue(line.Label),
		"default":     pongo2.AsSafeValue(line.Default),
		"has_default": line.HasDefault,
	})
	if err != nil {
		return "", fmt.Errorf("generator: execute template %q: %w", t.name, err)
	}
	return strings.TrimRight(out, "\r\n"), nil
}

// LoadTemplates reads "<mode><ext>" files (form.tpl, show.tpl, grid.tpl) and
// returns a template per mode found. Modes without a file are absent from the
// result so the built-in format stays in place.
func LoadTemplates(options ...TemplateOption) (map[Mode]Format, error) {
	cfg := &templateConfig{extension: ".tpl"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("generator: need to provide either template dir or fs.FS")
	}

	var (
		loaders []pongo2.TemplateLoader
		sources []fs.FS
	)
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("generator: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
		sources = append(sources, os.DirFS(cfg.baseDir))
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
		sources = append(sources, cfg.templates)
	}
	set := pongo2.NewSet("resourcegen", loaders...)

	out := make(map[Mode]Format)
	for _, mode := range Modes {
		name := string(mode) + cfg.extension
		if !templateExists(sources, name) {
			continue
		}
		tpl, err := set.FromFile(name)
		if err != nil {
			return nil, fmt.Errorf("generator: load template %q: %w", name, err)
		}
		out[mode] = &Template{name: name, tpl: tpl}
	}
	return out, nil
}

func templateExists(sources []fs.FS, name string) bool {
	for _, fsys := range sources {
		if _, err := fs.Stat(fsys, name); err == nil {
			return true
		}
	}
	return false
}
