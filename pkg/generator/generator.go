package generator

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-resourcegen/pkg/introspect"
	"github.com/goliatone/go-resourcegen/pkg/model"
	"github.com/goliatone/go-resourcegen/pkg/schema"
)

// Generator renders the sections for one model. Columns are fetched from the
// introspector on first use and reused for every later call.
type Generator struct {
	*Renderer

	model        model.Model
	introspector introspect.Introspector

	mu      sync.Mutex
	columns []schema.Column
}

// New binds a model to an introspector. A nil model is an invalid model
// reference. A nil introspector is accepted here and reported as
// introspect.ErrUnavailable when columns are first needed.
func New(m model.Model, introspector introspect.Introspector, options ...Option) (*Generator, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: model is required", model.ErrInvalidModel)
	}
	if strings.TrimSpace(m.Table()) == "" {
		return nil, fmt.Errorf("%w: model has no table", model.ErrInvalidModel)
	}
	renderer, err := NewRenderer(options...)
	if err != nil {
		return nil, err
	}
	return &Generator{
		Renderer:     renderer,
		model:        m,
		introspector: introspector,
	}, nil
}

// Model returns the bound model.
func (g *Generator) Model() model.Model {
	return g.model
}

// TableRef returns the table the generator reads, prefix applied and split
// into database qualifier and name.
func (g *Generator) TableRef() schema.TableRef {
	return schema.ParseTableRef(model.QualifiedTable(g.model))
}

// Columns returns a copy of the table columns, querying the introspector
// once.
func (g *Generator) Columns(ctx context.Context) ([]schema.Column, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.columns != nil {
		return slices.Clone(g.columns), nil
	}
	if g.introspector == nil {
		return nil, introspect.ErrUnavailable
	}
	columns, err := g.introspector.Columns(ctx, g.TableRef())
	if err != nil {
		return nil, err
	}
	g.columns = columns
	return slices.Clone(columns), nil
}

// GenerateForm renders form fields, skipping the model's reserved columns.
func (g *Generator) GenerateForm(ctx context.Context) (string, error) {
	return g.Generate(ctx, ModeForm)
}

// GenerateShow renders show-page fields for every column.
func (g *Generator) GenerateShow(ctx context.Context) (string, error) {
	return g.Generate(ctx, ModeShow)
}

// GenerateGrid renders grid columns for every column.
func (g *Generator) GenerateGrid(ctx context.Context) (string, error) {
	return g.Generate(ctx, ModeGrid)
}

// Generate renders the section for mode.
func (g *Generator) Generate(ctx context.Context, mode Mode) (string, error) {
	columns, err := g.Columns(ctx)
	if err != nil {
		return "", err
	}
	return g.Render(mode, columns, model.ReservedColumns(g.model))
}

// Sections holds the output of every mode.
type Sections struct {
	Form string
	Show string
	Grid string
}

// Get returns the section for mode.
func (s Sections) Get(mode Mode) string {
	switch mode {
	case ModeForm:
		return s.Form
	case ModeShow:
		return s.Show
	case ModeGrid:
		return s.Grid
	}
	return ""
}

// GenerateAll renders every mode from a single column fetch.
func (g *Generator) GenerateAll(ctx context.Context) (Sections, error) {
	var sections Sections
	var err error
	if sections.Form, err = g.Generate(ctx, ModeForm); err != nil {
		return Sections{}, err
	}
	if sections.Show, err = g.Generate(ctx, ModeShow); err != nil {
		return Sections{}, err
	}
	if sections.Grid, err = g.Generate(ctx, ModeGrid); err != nil {
		return Sections{}, err
	}
	return sections, nil
}
