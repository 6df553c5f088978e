package schema

// TypeTag is the structural category of a column as reported by the database.
// The set is closed; types the mapping does not recognise become TypeOther.
type TypeTag int

const (
	TypeOther TypeTag = iota
	TypeBoolean
	TypeJSON
	TypeString
	TypeInteger
	TypeBigInt
	TypeSmallInt
	TypeFloat
	TypeDecimal
	TypeDateTime
	TypeDate
	TypeTime
	TypeText
	TypeBlob
)

var typeNames = [...]string{
	TypeOther:    "other",
	TypeBoolean:  "boolean",
	TypeJSON:     "json",
	TypeString:   "string",
	TypeInteger:  "integer",
	TypeBigInt:   "bigint",
	TypeSmallInt: "smallint",
	TypeFloat:    "float",
	TypeDecimal:  "decimal",
	TypeDateTime: "datetime",
	TypeDate:     "date",
	TypeTime:     "time",
	TypeText:     "text",
	TypeBlob:     "blob",
}

// String returns the lower-case name of the tag.
func (t TypeTag) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return typeNames[TypeOther]
	}
	return typeNames[t]
}

// IsInteger reports whether the tag is one of the integer variants.
func (t TypeTag) IsInteger() bool {
	return t == TypeInteger || t == TypeBigInt || t == TypeSmallInt
}

// Column describes a single table column in physical order.
type Column struct {
	Name    string
	Type    TypeTag
	Default *string

	// RawType is the declared database type (e.g. "varchar(255)").
	RawType  string
	Nullable bool
	Comment  string
}

// DefaultValue returns the stored default or the empty string when the column
// has none.
func (c Column) DefaultValue() string {
	if c.Default == nil {
		return ""
	}
	return *c.Default
}

// HasDefault reports whether the database declares a default for the column.
func (c Column) HasDefault() bool {
	return c.Default != nil
}

// StringPtr is a small helper for building columns with defaults in code.
func StringPtr(value string) *string {
	return &value
}
