package generator

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/goliatone/go-resourcegen/internal/field"
	"github.com/goliatone/go-resourcegen/pkg/schema"
)

// DefaultLineEnding terminates every rendered declaration.
const DefaultLineEnding = "\r\n"

// Option customises a Renderer or Generator.
type Option func(*Renderer)

// WithLineEnding overrides the terminator appended after every declaration.
func WithLineEnding(ending string) Option {
	return func(r *Renderer) {
		r.lineEnding = ending
	}
}

// WithFormat replaces the format used for mode. An unknown mode makes
// NewRenderer fail.
func WithFormat(mode Mode, format Format) Option {
	return func(r *Renderer) {
		if err := r.formats.Set(mode, format); err != nil {
			r.initErr = err
		}
	}
}

// WithFormats replaces several formats at once, typically the result of
// LoadTemplates.
func WithFormats(formats map[Mode]Format) Option {
	return func(r *Renderer) {
		for mode, format := range formats {
			if err := r.formats.Set(mode, format); err != nil {
				r.initErr = err
				return
			}
		}
	}
}

// WithFieldRules replaces the column name rules refining string columns.
func WithFieldRules(rules ...field.Rule) Option {
	return func(r *Renderer) {
		r.classifier = field.NewClassifier(rules...)
	}
}

// Renderer turns column lists into declarations. It holds no per-call state
// and may be shared between goroutines.
type Renderer struct {
	classifier *field.Classifier
	formats    *Formats
	lineEnding string
	initErr    error
}

// NewRenderer constructs a Renderer with the built-in formats and rules.
func NewRenderer(options ...Option) (*Renderer, error) {
	r := &Renderer{
		classifier: field.NewClassifier(),
		formats:    NewFormats(),
		lineEnding: DefaultLineEnding,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.initErr != nil {
		return nil, r.initErr
	}
	return r, nil
}

// Form renders a form declaration for every column not listed in reserved.
// A default clause is added when the default expression, stripped of quote
// characters, is non-empty.
func (r *Renderer) Form(columns []schema.Column, reserved []string) (string, error) {
	format, err := r.formats.Get(ModeForm)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, column := range columns {
		if lo.Contains(reserved, column.Name) {
			continue
		}
		classified := r.classifier.Classify(column)
		line := Line{
			Widget:     classified.Widget,
			Column:     column.Name,
			Label:      field.FormatLabel(column.Name),
			Default:    classified.Default,
			HasDefault: strings.Trim(classified.Default, `'"`) != "",
		}
		if err := r.write(&out, format, line); err != nil {
			return "", err
		}
	}
	return out.String(), nil
}

// Show renders a show-page declaration for every column.
func (r *Renderer) Show(columns []schema.Column) (string, error) {
	return r.plain(ModeShow, columns)
}

// Grid renders a grid column declaration for every column.
func (r *Renderer) Grid(columns []schema.Column) (string, error) {
	return r.plain(ModeGrid, columns)
}

// Render dispatches to Form, Show or Grid. Reserved columns only apply to the
// form mode.
func (r *Renderer) Render(mode Mode, columns []schema.Column, reserved []string) (string, error) {
	switch mode {
	case ModeForm:
		return r.Form(columns, reserved)
	case ModeShow:
		return r.Show(columns)
	case ModeGrid:
		return r.Grid(columns)
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownMode, mode)
	}
}

func (r *Renderer) plain(mode Mode, columns []schema.Column) (string, error) {
	format, err := r.formats.Get(mode)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, column := range columns {
		line := Line{Column: column.Name, Label: field.FormatLabel(column.Name)}
		if err := r.write(&out, format, line); err != nil {
			return "", err
		}
	}
	return out.String(), nil
}

func (r *Renderer) write(out *strings.Builder, format Format, line Line) error {
	rendered, err := format.Render(line)
	if err != nil {
		return fmt.Errorf("generator: render column %q: %w", line.Column, err)
	}
	out.WriteString(rendered)
	out.WriteString(r.lineEnding)
	return nil
}

var defaultRenderer = func() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}()

// Form renders form declarations with the built-in formats.
func Form(columns []schema.Column, reserved []string) string {
	out, _ := defaultRenderer.Form(columns, reserved)
	return out
}

// Show renders show-page declarations with the built-in formats.
func Show(columns []schema.Column) string {
	out, _ := defaultRenderer.Show(columns)
	return out
}

// Grid renders grid declarations with the built-in formats.
func Grid(columns []schema.Column) string {
	out, _ := defaultRenderer.Grid(columns)
	return out
}
