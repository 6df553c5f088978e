package resourcegen

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-resourcegen/pkg/config"
	"github.com/goliatone/go-resourcegen/pkg/generator"
	"github.com/goliatone/go-resourcegen/pkg/introspect"
	"github.com/goliatone/go-resourcegen/pkg/model"
	"github.com/goliatone/go-resourcegen/pkg/openapi"
)

// Generator aliases generator.Generator for callers that only import the
// root package.
type Generator = generator.Generator

// Option configures the generator (line ending, formats, field rules).
type Option = generator.Option

// Mode names a generated section.
type Mode = generator.Mode

// Sections holds the form, show and grid output of one run.
type Sections = generator.Sections

// New binds a model to an introspector.
func New(m model.Model, introspector introspect.Introspector, options ...Option) (*Generator, error) {
	return generator.New(m, introspector, options...)
}

// Handle is a generator bound to a database handle it opened itself.
type Handle struct {
	*Generator
	inspector *introspect.Inspector
}

// Inspector exposes the open database handle, for listing tables.
func (h *Handle) Inspector() *introspect.Inspector {
	return h.inspector
}

// Close releases the database handle.
func (h *Handle) Close() error {
	if h == nil || h.inspector == nil {
		return nil
	}
	return h.inspector.Close()
}

// FromDefinition resolves the definition's connection in file, opens it and
// returns a generator reading from it. The connection's table prefix applies
// when the definition sets none. The caller must Close the handle.
func FromDefinition(ctx context.Context, def model.Definition, file config.File, options ...Option) (*Handle, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	conn, err := file.Connection(def.ConnectionName())
	if err != nil {
		return nil, err
	}
	if def.Prefix == "" {
		def.Prefix = conn.Prefix
	}

	inspector, err := introspect.Open(ctx, conn)
	if err != nil {
		return nil, err
	}
	gen, err := generator.New(def, inspector, options...)
	if err != nil {
		return nil, errors.Join(err, inspector.Close())
	}
	return &Handle{Generator: gen, inspector: inspector}, nil
}

// Generate is the one-shot entry point: it renders a single section for m.
func Generate(ctx context.Context, m model.Model, introspector introspect.Introspector, mode Mode, options ...Option) (string, error) {
	gen, err := generator.New(m, introspector, options...)
	if err != nil {
		return "", err
	}
	return gen.Generate(ctx, mode)
}

// OpenAPI describes the generator's table as an OpenAPI component schema.
func OpenAPI(ctx context.Context, gen *Generator) (*openapi3.T, error) {
	if gen == nil {
		return nil, fmt.Errorf("resourcegen: generator is required")
	}
	columns, err := gen.Columns(ctx)
	if err != nil {
		return nil, err
	}
	return openapi.Document(gen.TableRef().Name, columns), nil
}
