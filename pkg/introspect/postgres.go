package introspect

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/goliatone/go-resourcegen/pkg/config"
	"github.com/goliatone/go-resourcegen/pkg/schema"
)

const postgresColumnsQuery = `SELECT c.column_name, c.data_type, c.column_default, c.is_nullable,
	COALESCE(pg_catalog.col_description(format('%I.%I', c.table_schema, c.table_name)::regclass::oid, c.ordinal_position), '')
FROM information_schema.columns c
WHERE c.table_schema = COALESCE(NULLIF($1, ''), current_schema()) AND c.table_name = $2
ORDER BY c.ordinal_position`

const postgresTablesQuery = `SELECT table_name
FROM information_schema.tables
WHERE table_schema = COALESCE(NULLIF($1, ''), current_schema()) AND table_type = 'BASE TABLE'
ORDER BY table_name`

// Postgres reads information_schema on PostgreSQL. The table qualifier is the
// schema name; unqualified tables resolve against current_schema().
type Postgres struct{}

var _ Dialect = Postgres{}

// Name implements Dialect.
func (Postgres) Name() string { return config.DriverPostgres }

// DriverName implements Dialect.
func (Postgres) DriverName() string { return "postgres" }

// Columns implements Dialect.
func (Postgres) Columns(ctx context.Context, q Querier, table schema.TableRef) ([]schema.Column, error) {
	rows, err := q.QueryContext(ctx, postgresColumnsQuery, table.Database, table.Name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var (
			name, dataType, isNullable, comment string
			def                                 sql.NullString
		)
		if err := rows.Scan(&name, &dataType, &def, &isNullable, &comment); err != nil {
			return nil, err
		}
		columns = append(columns, schema.Column{
			Name:     name,
			Type:     schema.TypeFromDatabase(dataType),
			Default:  normalizeDefault(def),
			RawType:  dataType,
			Nullable: nullable(isNullable),
			Comment:  comment,
		})
	}
	return columns, rows.Err()
}

// Tables implements Dialect.
func (Postgres) Tables(ctx context.Context, q Querier, database string) ([]string, error) {
	rows, err := q.QueryContext(ctx, postgresTablesQuery, database)
	if err != nil {
		return nil, err
	}
	return collectStrings(rows)
}
