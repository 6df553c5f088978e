// Package schema describes the column metadata produced by schema
// introspection: ordered column descriptors, the closed TypeTag enumeration
// and the mapping from raw database type names onto it.
package schema
