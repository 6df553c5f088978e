package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-resourcegen/pkg/config"
	"github.com/goliatone/go-resourcegen/pkg/schema"
)

// SQLite reads PRAGMA table_info. The table qualifier names an attached
// database ("main" when empty).
type SQLite struct{}

var _ Dialect = SQLite{}

// Name implements Dialect.
func (SQLite) Name() string { return config.DriverSQLite }

// DriverName implements Dialect.
func (SQLite) DriverName() string { return "sqlite" }

// Columns implements Dialect.
func (SQLite) Columns(ctx context.Context, q Querier, table schema.TableRef) ([]schema.Column, error) {
	query := fmt.Sprintf("PRAGMA %s.table_info(%s)", quoteIdent(sqliteDatabase(table.Database)), quoteIdent(table.Name))
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			def              sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &def, &pk); err != nil {
			return nil, err
		}
		columns = append(columns, schema.Column{
			Name:     name,
			Type:     schema.TypeFromDatabase(colType),
			Default:  normalizeDefault(def),
			RawType:  colType,
			Nullable: notNull == 0 && pk == 0,
		})
	}
	return columns, rows.Err()
}

// Tables implements Dialect.
func (SQLite) Tables(ctx context.Context, q Querier, database string) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT name FROM %s.sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%%' ORDER BY name",
		quoteIdent(sqliteDatabase(database)),
	)
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectStrings(rows)
}

func sqliteDatabase(name string) string {
	if strings.TrimSpace(name) == "" {
		return "main"
	}
	return name
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
