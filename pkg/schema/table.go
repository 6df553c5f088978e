package schema

import "strings"

// TableRef identifies a table, optionally qualified by a database (MySQL) or
// schema (PostgreSQL) name.
type TableRef struct {
	Database string
	Name     string
}

// ParseTableRef splits "database.table" into its parts. Only the first dot
// separates the qualifier; names without a dot (or starting with one) are
// returned unqualified.
func ParseTableRef(table string) TableRef {
	trimmed := strings.TrimSpace(table)
	if idx := strings.Index(trimmed, "."); idx > 0 {
		return TableRef{Database: trimmed[:idx], Name: trimmed[idx+1:]}
	}
	return TableRef{Name: trimmed}
}

// String renders the reference back into dotted form.
func (r TableRef) String() string {
	if r.Database == "" {
		return r.Name
	}
	return r.Database + "." + r.Name
}
