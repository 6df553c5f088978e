// Package config holds database connection settings. Connections are explicit
// values handed to the introspector; nothing here reads global state except
// Load, which expands environment references while parsing a file.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Supported driver names.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgsql"
	DriverSQLite   = "sqlite"
)

const (
	defaultMySQLPort    = 3306
	defaultPostgresPort = 5432
	defaultCharset      = "utf8mb4"
	defaultHost         = "127.0.0.1"
)

// ErrUnknownConnection is returned when a named connection is not configured.
var ErrUnknownConnection = errors.New("config: unknown connection")

// Connection describes how to reach a database.
type Connection struct {
	Driver   string `yaml:"driver" json:"driver"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Database string `yaml:"database" json:"database"`
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
	Charset  string `yaml:"charset" json:"charset"`
	Prefix   string `yaml:"prefix" json:"prefix"`
	// Path locates the database file for sqlite connections.
	Path    string `yaml:"path" json:"path"`
	SSLMode string `yaml:"sslmode" json:"sslmode"`
}

// WithDefaults fills the driver, host, port and charset when unset.
func (c Connection) WithDefaults() Connection {
	c.Driver = NormalizeDriver(c.Driver)
	switch c.Driver {
	case DriverMySQL:
		if c.Port == 0 {
			c.Port = defaultMySQLPort
		}
		if c.Charset == "" {
			c.Charset = defaultCharset
		}
		if c.Host == "" {
			c.Host = defaultHost
		}
	case DriverPostgres:
		if c.Port == 0 {
			c.Port = defaultPostgresPort
		}
		if c.Host == "" {
			c.Host = defaultHost
		}
		if c.SSLMode == "" {
			c.SSLMode = "disable"
		}
	case DriverSQLite:
		if c.Path == "" {
			c.Path = c.Database
		}
	}
	return c
}

// NormalizeDriver maps driver aliases onto the supported names. An empty value
// selects MySQL.
func NormalizeDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "mysql", "mariadb", "pdo_mysql":
		return DriverMySQL
	case "pgsql", "postgres", "postgresql", "pdo_pgsql":
		return DriverPostgres
	case "sqlite", "sqlite3", "pdo_sqlite":
		return DriverSQLite
	default:
		return strings.ToLower(strings.TrimSpace(driver))
	}
}

// DSN renders the data source name understood by the driver's database/sql
// implementation.
func (c Connection) DSN() (string, error) {
	conn := c.WithDefaults()
	switch conn.Driver {
	case DriverMySQL:
		cfg := mysql.NewConfig()
		cfg.User = conn.Username
		cfg.Passwd = conn.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(conn.Host, strconv.Itoa(conn.Port))
		cfg.DBName = conn.Database
		cfg.Params = map[string]string{"charset": conn.Charset}
		return cfg.FormatDSN(), nil
	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(conn.Host, strconv.Itoa(conn.Port)),
			Path:   "/" + conn.Database,
		}
		if conn.Username != "" {
			if conn.Password != "" {
				u.User = url.UserPassword(conn.Username, conn.Password)
			} else {
				u.User = url.User(conn.Username)
			}
		}
		q := url.Values{}
		q.Set("sslmode", conn.SSLMode)
		u.RawQuery = q.Encode()
		return u.String(), nil
	case DriverSQLite:
		if conn.Path == "" {
			return "", fmt.Errorf("config: sqlite connection requires a path")
		}
		return conn.Path, nil
	default:
		return "", fmt.Errorf("config: unsupported driver %q", conn.Driver)
	}
}

// File is a set of named connections with an optional default.
type File struct {
	Default     string                `yaml:"default" json:"default"`
	Connections map[string]Connection `yaml:"connections" json:"connections"`
}

// Connection resolves a connection by name; an empty name selects the
// default. The result has defaults applied.
func (f File) Connection(name string) (Connection, error) {
	key := strings.TrimSpace(name)
	if key == "" {
		key = strings.TrimSpace(f.Default)
	}
	if key == "" && len(f.Connections) == 1 {
		for only := range f.Connections {
			key = only
		}
	}
	conn, ok := f.Connections[key]
	if !ok {
		return Connection{}, fmt.Errorf("%w %q", ErrUnknownConnection, key)
	}
	return conn.WithDefaults(), nil
}

// Names lists the configured connection names in sorted order.
func (f File) Names() []string {
	names := make([]string, 0, len(f.Connections))
	for name := range f.Connections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
