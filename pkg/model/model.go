package model

import (
	"errors"
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/iancoleman/strcase"
	"github.com/samber/lo"
)

// SoftDeleteColumn is always reserved from form generation.
const SoftDeleteColumn = "deleted_at"

// Defaults applied to Definition when fields are left empty.
const (
	DefaultKeyName         = "id"
	DefaultCreatedAtColumn = "created_at"
	DefaultUpdatedAtColumn = "updated_at"
)

// ErrInvalidModel is returned when a value cannot be resolved to a model.
var ErrInvalidModel = errors.New("model: invalid model")

// Model is the capability the generator needs from an application model.
type Model interface {
	KeyName() string
	CreatedAtColumn() string
	UpdatedAtColumn() string
	ConnectionName() string
	Table() string
}

// TablePrefixer is implemented by models whose connection prepends a prefix to
// every table name.
type TablePrefixer interface {
	TablePrefix() string
}

// ReservedColumns returns the columns excluded from form scaffolding: the
// primary key, both timestamp columns and the soft delete marker. Empty names
// are skipped.
func ReservedColumns(m Model) []string {
	if m == nil {
		return []string{SoftDeleteColumn}
	}
	columns := []string{m.KeyName(), m.CreatedAtColumn(), m.UpdatedAtColumn(), SoftDeleteColumn}
	return lo.Uniq(lo.Filter(columns, func(name string, _ int) bool {
		return strings.TrimSpace(name) != ""
	}))
}

// QualifiedTable returns the table name with the connection prefix applied
// when the model exposes one.
func QualifiedTable(m Model) string {
	if m == nil {
		return ""
	}
	table := m.Table()
	if prefixer, ok := m.(TablePrefixer); ok {
		table = prefixer.TablePrefix() + table
	}
	return table
}

// TableFor derives the conventional table name for a model name: snake case,
// pluralised on the last word ("BlogPost" becomes "blog_posts").
func TableFor(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	snake := strcase.ToSnake(trimmed)
	idx := strings.LastIndex(snake, "_")
	return snake[:idx+1] + inflect.Pluralize(snake[idx+1:])
}
