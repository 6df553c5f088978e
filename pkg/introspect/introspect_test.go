package introspect

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-resourcegen/pkg/config"
	"github.com/goliatone/go-resourcegen/pkg/schema"
)

func newMock(t *testing.T, dialect Dialect) (*Inspector, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	inspector, err := New(db, dialect)
	require.NoError(t, err)
	return inspector, mock
}

func TestMySQLColumns(t *testing.T) {
	inspector, mock := newMock(t, MySQL{})

	rows := sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "COLUMN_DEFAULT", "IS_NULLABLE", "COLUMN_COMMENT"}).
		AddRow("id", "bigint(20) unsigned", nil, "NO", "").
		AddRow("email", "varchar(255)", nil, "NO", "login").
		AddRow("status", "enum('draft','published')", "'draft'", "NO", "").
		AddRow("is_admin", "tinyint(1)", "0", "NO", "").
		AddRow("bio", "text", "NULL", "YES", "").
		AddRow("created_at", "timestamp", "CURRENT_TIMESTAMP", "YES", "")
	mock.ExpectQuery(mysqlColumnsQuery).WithArgs("shop", "users").WillReturnRows(rows)

	columns, err := inspector.Columns(context.Background(), schema.TableRef{Database: "shop", Name: "users"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, columns, 6)
	assert.Equal(t, schema.Column{Name: "id", Type: schema.TypeBigInt, RawType: "bigint(20) unsigned"}, columns[0])
	assert.Equal(t, "login", columns[1].Comment)
	assert.Equal(t, schema.TypeString, columns[2].Type)
	assert.Equal(t, "draft", columns[2].DefaultValue())
	assert.Equal(t, schema.TypeBoolean, columns[3].Type)
	assert.Equal(t, "0", columns[3].DefaultValue())
	assert.Nil(t, columns[4].Default)
	assert.True(t, columns[4].Nullable)
	assert.Equal(t, schema.TypeDateTime, columns[5].Type)
	assert.Equal(t, "CURRENT_TIMESTAMP", columns[5].DefaultValue())
}

func TestMySQLColumns_TableNotFound(t *testing.T) {
	inspector, mock := newMock(t, MySQL{})

	mock.ExpectQuery(mysqlColumnsQuery).WithArgs("", "ghosts").
		WillReturnRows(sqlmock.NewRows([]string{"COLUMN_NAME", "COLUMN_TYPE", "COLUMN_DEFAULT", "IS_NULLABLE", "COLUMN_COMMENT"}))

	_, err := inspector.Columns(context.Background(), schema.ParseTableRef("ghosts"))
	require.ErrorIs(t, err, ErrTableNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLColumns_QueryError(t *testing.T) {
	inspector, mock := newMock(t, MySQL{})

	boom := errors.New("connection reset")
	mock.ExpectQuery(mysqlColumnsQuery).WithArgs("", "users").WillReturnError(boom)

	_, err := inspector.Columns(context.Background(), schema.ParseTableRef("users"))
	require.ErrorIs(t, err, boom)
}

func TestMySQLTables(t *testing.T) {
	inspector, mock := newMock(t, MySQL{})

	mock.ExpectQuery(mysqlTablesQuery).WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"TABLE_NAME"}).AddRow("posts").AddRow("users"))

	tables, err := inspector.Tables(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"posts", "users"}, tables)
}

func TestPostgresColumns(t *testing.T) {
	inspector, mock := newMock(t, Postgres{})

	rows := sqlmock.NewRows([]string{"column_name", "data_type", "column_default", "is_nullable", "comment"}).
		AddRow("id", "integer", "nextval('posts_id_seq'::regclass)", "NO", "").
		AddRow("title", "character varying", "'Untitled'::character varying", "NO", "headline").
		AddRow("meta", "jsonb", "'{}'::jsonb", "YES", "").
		AddRow("price", "numeric", "0", "NO", "").
		AddRow("published_on", "date", nil, "YES", "")
	mock.ExpectQuery(postgresColumnsQuery).WithArgs("", "posts").WillReturnRows(rows)

	columns, err := inspector.Columns(context.Background(), schema.ParseTableRef("posts"))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, columns, 5)
	assert.Equal(t, schema.TypeInteger, columns[0].Type)
	assert.Nil(t, columns[0].Default)
	assert.Equal(t, "Untitled", columns[1].DefaultValue())
	assert.Equal(t, "headline", columns[1].Comment)
	assert.Equal(t, schema.TypeJSON, columns[2].Type)
	assert.Equal(t, "{}", columns[2].DefaultValue())
	assert.Equal(t, schema.TypeDecimal, columns[3].Type)
	assert.Equal(t, schema.TypeDate, columns[4].Type)
	assert.True(t, columns[4].Nullable)
}

func TestSQLiteColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE articles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title VARCHAR(255) NOT NULL DEFAULT 'draft',
		avatar VARCHAR(255),
		published BOOLEAN NOT NULL DEFAULT 0,
		body TEXT,
		created_at DATETIME
	)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	inspector, err := Open(context.Background(), config.Connection{Driver: "sqlite", Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = inspector.Close() })

	columns, err := inspector.Columns(context.Background(), schema.ParseTableRef("articles"))
	require.NoError(t, err)

	var names []string
	for _, column := range columns {
		names = append(names, column.Name)
	}
	assert.Equal(t, []string{"id", "title", "avatar", "published", "body", "created_at"}, names)
	assert.Equal(t, schema.TypeInteger, columns[0].Type)
	assert.False(t, columns[0].Nullable)
	assert.Equal(t, "draft", columns[1].DefaultValue())
	assert.True(t, columns[2].Nullable)
	assert.Equal(t, schema.TypeBoolean, columns[3].Type)
	assert.Equal(t, schema.TypeText, columns[4].Type)
	assert.Equal(t, schema.TypeDateTime, columns[5].Type)

	tables, err := inspector.Tables(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"articles"}, tables)

	_, err = inspector.Columns(context.Background(), schema.ParseTableRef("missing"))
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Connection{Driver: "oracle"})
	require.ErrorIs(t, err, ErrUnavailable)

	_, err = Open(context.Background(), config.Connection{Driver: "mysql"}, WithRegistry(NewRegistry()))
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(MySQL{}))
	require.Error(t, registry.Register(MySQL{}))
	require.Error(t, registry.Register(nil))

	dialect, err := registry.Get("mariadb")
	require.NoError(t, err)
	assert.Equal(t, "mysql", dialect.DriverName())

	assert.Equal(t, []string{"mysql", "pgsql", "sqlite"}, DefaultRegistry().List())
}

func TestNilInspector(t *testing.T) {
	var inspector *Inspector
	_, err := inspector.Columns(context.Background(), schema.ParseTableRef("users"))
	require.ErrorIs(t, err, ErrUnavailable)
	require.NoError(t, inspector.Close())

	_, err = New(nil, MySQL{})
	require.Error(t, err)
}

func TestStatic(t *testing.T) {
	static := Static{"shop.users": {{Name: "id", Type: schema.TypeInteger}}}

	columns, err := static.Columns(context.Background(), schema.ParseTableRef("shop.users"))
	require.NoError(t, err)
	assert.Len(t, columns, 1)

	_, err = static.Columns(context.Background(), schema.ParseTableRef("users"))
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestNormalizeDefault(t *testing.T) {
	cases := map[string]*string{
		"NULL":                          nil,
		"nextval('x_seq'::regclass)":    nil,
		"'it''s'":                       schema.StringPtr("it's"),
		"'a'::character varying":        schema.StringPtr("a"),
		"NULL::character varying":       nil,
		"CURRENT_TIMESTAMP":             schema.StringPtr("CURRENT_TIMESTAMP"),
		"'{}'::jsonb":                   schema.StringPtr("{}"),
		"'{a,b}'::text[]":               schema.StringPtr("{a,b}"),
		"'2020-01-01'::date":            schema.StringPtr("2020-01-01"),
		"0.00":                          schema.StringPtr("0.00"),
		"'x'::character varying(10)":    schema.StringPtr("x"),
		`'x'::"MyEnum"`:                 schema.StringPtr("x"),
		`'draft'::public."Status"`:      schema.StringPtr("draft"),
		`'a'::text::"Quoted ""Name"""`:  schema.StringPtr("a"),
		"'{a}'::character varying(8)[]": schema.StringPtr("{a}"),
		"'a::b'":                        schema.StringPtr("a::b"),
	}
	for raw, want := range cases {
		got := normalizeDefault(sql.NullString{String: raw, Valid: true})
		assert.Equal(t, want, got, raw)
	}
	assert.Nil(t, normalizeDefault(sql.NullString{}))
}
