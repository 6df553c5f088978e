// Package introspect reads ordered column metadata from a live database.
//
// Dialects know how to query one database flavour (MySQL, PostgreSQL, SQLite)
// and are kept in a Registry keyed by the normalised driver name. Open
// resolves the dialect for a config.Connection, opens the database/sql handle
// and returns an Inspector. Failures are returned unchanged to the caller; the
// package never retries.
package introspect
