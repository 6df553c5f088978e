// Package openapi exports introspected columns as an OpenAPI 3 component
// schema. The output describes one table as an object schema so it can feed
// OpenAPI driven tooling (request validation, form builders) alongside the
// generated admin declarations.
package openapi
