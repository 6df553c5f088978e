package introspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goliatone/go-resourcegen/pkg/config"
	"github.com/goliatone/go-resourcegen/pkg/schema"
)

var (
	// ErrUnavailable is returned when no dialect serves the requested driver.
	ErrUnavailable = errors.New("introspect: schema introspection unavailable")
	// ErrTableNotFound is returned when the table has no visible columns.
	ErrTableNotFound = errors.New("introspect: table not found")
)

// Introspector returns the columns of a table in physical order.
type Introspector interface {
	Columns(ctx context.Context, table schema.TableRef) ([]schema.Column, error)
}

// TableLister is implemented by introspectors able to enumerate tables.
type TableLister interface {
	Tables(ctx context.Context, database string) ([]string, error)
}

// Querier is the subset of *sql.DB the dialects rely on.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Dialect queries one database flavour.
type Dialect interface {
	// Name is the normalised connection driver (see config.NormalizeDriver).
	Name() string
	// DriverName is the database/sql driver used to open connections.
	DriverName() string
	Columns(ctx context.Context, q Querier, table schema.TableRef) ([]schema.Column, error)
	Tables(ctx context.Context, q Querier, database string) ([]string, error)
}

// Inspector binds a dialect to an open database handle.
type Inspector struct {
	db      *sql.DB
	dialect Dialect
}

var (
	_ Introspector = (*Inspector)(nil)
	_ TableLister  = (*Inspector)(nil)
)

// New wraps an already opened database handle.
func New(db *sql.DB, dialect Dialect) (*Inspector, error) {
	if db == nil {
		return nil, fmt.Errorf("introspect: database handle is required")
	}
	if dialect == nil {
		return nil, ErrUnavailable
	}
	return &Inspector{db: db, dialect: dialect}, nil
}

// Option customises Open.
type Option func(*openConfig)

type openConfig struct {
	registry *Registry
}

// WithRegistry resolves dialects from registry instead of the default one.
func WithRegistry(registry *Registry) Option {
	return func(cfg *openConfig) {
		cfg.registry = registry
	}
}

// Open resolves the dialect for conn, opens a database handle and pings it.
// The caller owns the returned Inspector and must Close it.
func Open(ctx context.Context, conn config.Connection, options ...Option) (*Inspector, error) {
	cfg := &openConfig{registry: DefaultRegistry()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	conn = conn.WithDefaults()
	dialect, err := cfg.registry.Get(conn.Driver)
	if err != nil {
		return nil, err
	}
	dsn, err := conn.DSN()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("introspect: open %s: %w", conn.Driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("introspect: connect %s: %w", conn.Driver, err)
	}
	return &Inspector{db: db, dialect: dialect}, nil
}

// Columns implements Introspector.
func (i *Inspector) Columns(ctx context.Context, table schema.TableRef) ([]schema.Column, error) {
	if i == nil || i.db == nil || i.dialect == nil {
		return nil, ErrUnavailable
	}
	columns, err := i.dialect.Columns(ctx, i.db, table)
	if err != nil {
		return nil, fmt.Errorf("introspect: columns of %s: %w", table, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	return columns, nil
}

// Tables implements TableLister.
func (i *Inspector) Tables(ctx context.Context, database string) ([]string, error) {
	if i == nil || i.db == nil || i.dialect == nil {
		return nil, ErrUnavailable
	}
	tables, err := i.dialect.Tables(ctx, i.db, database)
	if err != nil {
		return nil, fmt.Errorf("introspect: list tables: %w", err)
	}
	return tables, nil
}

// Close releases the database handle.
func (i *Inspector) Close() error {
	if i == nil || i.db == nil {
		return nil
	}
	return i.db.Close()
}

// Static serves a fixed column list, useful for tests and for callers that
// obtained metadata elsewhere.
type Static map[string][]schema.Column

// Columns implements Introspector. Lookups use the dotted table reference.
func (s Static) Columns(_ context.Context, table schema.TableRef) ([]schema.Column, error) {
	columns, ok := s[table.String()]
	if !ok || len(columns) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	return append([]schema.Column(nil), columns...), nil
}

func collectStrings(rows *sql.Rows) ([]string, error) {
	defer rows.Close()
	var out []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, rows.Err()
}
