package model

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog holds model definitions keyed by name.
type Catalog struct {
	models map[string]Definition
}

type catalogFile struct {
	Models []Definition `json:"models" yaml:"models"`
}

// NewCatalog builds a catalog from in-memory definitions. Duplicate or
// unresolvable definitions are rejected.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	catalog := &Catalog{models: make(map[string]Definition, len(defs))}
	for _, def := range defs {
		if err := catalog.add(def, "<memory>"); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// LoadFS walks fsys and parses every JSON/YAML file holding a "models" list.
// A nil filesystem yields an empty catalog.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{models: make(map[string]Definition)}
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isCatalogFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("model: read %s: %w", path, err)
		}
		doc, err := parseCatalog(data, path)
		if err != nil {
			return err
		}
		for _, def := range doc.Models {
			if err := catalog.add(def, path); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Lookup resolves a definition by name. Unknown names wrap ErrInvalidModel.
func (c *Catalog) Lookup(name string) (Definition, error) {
	trimmed := strings.TrimSpace(name)
	if c != nil {
		if def, ok := c.models[trimmed]; ok {
			return def, nil
		}
	}
	return Definition{}, fmt.Errorf("%w [%s]", ErrInvalidModel, trimmed)
}

// Names lists the catalog entries in sorted order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.models))
	for name := range c.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of definitions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.models)
}

func (c *Catalog) add(def Definition, source string) error {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return fmt.Errorf("model: file %s defines a model without a name", source)
	}
	def.Name = name
	if err := def.Validate(); err != nil {
		return err
	}
	if _, exists := c.models[name]; exists {
		return fmt.Errorf("model: duplicate model %q (file %s)", name, source)
	}
	c.models[name] = def
	return nil
}

func parseCatalog(data []byte, source string) (catalogFile, error) {
	var doc catalogFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return catalogFile{}, fmt.Errorf("model: file %s is empty", source)
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return catalogFile{}, fmt.Errorf("model: parse %s: invalid JSON or YAML", source)
}

func isCatalogFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
