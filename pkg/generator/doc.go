// Package generator renders scaffolding declarations for a table: form fields,
// show-page fields and grid columns, one line per column.
//
// Renderer is the pure part: it turns a column list into text and never
// touches a database. Generator binds a Renderer to a model and an
// introspector, fetching the column list once and reusing it for every mode.
package generator
