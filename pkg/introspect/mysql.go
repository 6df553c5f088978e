package introspect

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	"github.com/goliatone/go-resourcegen/pkg/config"
	"github.com/goliatone/go-resourcegen/pkg/schema"
)

const mysqlColumnsQuery = `SELECT COLUMN_NAME, COLUMN_TYPE, COLUMN_DEFAULT, IS_NULLABLE, COLUMN_COMMENT
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE()) AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`

const mysqlTablesQuery = `SELECT TABLE_NAME
FROM information_schema.TABLES
WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE()) AND TABLE_TYPE = 'BASE TABLE'
ORDER BY TABLE_NAME`

// MySQL reads information_schema on MySQL and MariaDB. An unqualified table
// resolves against the connection's current database.
type MySQL struct{}

var _ Dialect = MySQL{}

// Name implements Dialect.
func (MySQL) Name() string { return config.DriverMySQL }

// DriverName implements Dialect.
func (MySQL) DriverName() string { return "mysql" }

// Columns implements Dialect.
func (MySQL) Columns(ctx context.Context, q Querier, table schema.TableRef) ([]schema.Column, error) {
	rows, err := q.QueryContext(ctx, mysqlColumnsQuery, table.Database, table.Name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []schema.Column
	for rows.Next() {
		var (
			name, columnType, isNullable, comment string
			def                                   sql.NullString
		)
		if err := rows.Scan(&name, &columnType, &def, &isNullable, &comment); err != nil {
			return nil, err
		}
		columns = append(columns, schema.Column{
			Name:     name,
			Type:     schema.TypeFromDatabase(columnType),
			Default:  normalizeDefault(def),
			RawType:  columnType,
			Nullable: nullable(isNullable),
			Comment:  comment,
		})
	}
	return columns, rows.Err()
}

// Tables implements Dialect.
func (MySQL) Tables(ctx context.Context, q Querier, database string) ([]string, error) {
	rows, err := q.QueryContext(ctx, mysqlTablesQuery, database)
	if err != nil {
		return nil, err
	}
	return collectStrings(rows)
}
