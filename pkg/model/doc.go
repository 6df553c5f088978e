// Package model describes the model collaborator consumed by the generator:
// the table a resource maps to, the connection it lives on and the columns the
// framework manages itself (key, timestamps, soft deletes).
//
// Definition is a plain struct implementation with Eloquent style defaults.
// Catalog loads named definitions from YAML files so the CLI can resolve a
// model by name.
package model
