package schema

import "strings"

// databaseTypes maps lower-cased base type names onto tags. Spatial and enum
// types are treated as plain strings so they scaffold as text inputs.
var databaseTypes = map[string]TypeTag{
	"bool":    TypeBoolean,
	"boolean": TypeBoolean,

	"json":  TypeJSON,
	"jsonb": TypeJSON,

	"char":               TypeString,
	"varchar":            TypeString,
	"character":          TypeString,
	"character varying":  TypeString,
	"nchar":              TypeString,
	"nvarchar":           TypeString,
	"enum":               TypeString,
	"set":                TypeString,
	"uuid":               TypeString,
	"inet":               TypeString,
	"geometry":           TypeString,
	"geometrycollection": TypeString,
	"linestring":         TypeString,
	"polygon":            TypeString,
	"multilinestring":    TypeString,
	"multipoint":         TypeString,
	"multipolygon":       TypeString,
	"point":              TypeString,

	"int":       TypeInteger,
	"integer":   TypeInteger,
	"mediumint": TypeInteger,
	"int4":      TypeInteger,
	"serial":    TypeInteger,
	"bigint":    TypeBigInt,
	"int8":      TypeBigInt,
	"bigserial": TypeBigInt,
	"smallint":  TypeSmallInt,
	"tinyint":   TypeSmallInt,
	"int2":      TypeSmallInt,
	"year":      TypeSmallInt,

	"float":            TypeFloat,
	"float4":           TypeFloat,
	"float8":           TypeFloat,
	"double":           TypeFloat,
	"double precision": TypeFloat,
	"real":             TypeFloat,
	"decimal":          TypeDecimal,
	"numeric":          TypeDecimal,
	"money":            TypeDecimal,

	"datetime":                    TypeDateTime,
	"timestamp":                   TypeDateTime,
	"timestamptz":                 TypeDateTime,
	"timestamp without time zone": TypeDateTime,
	"timestamp with time zone":    TypeDateTime,
	"date":                        TypeDate,
	"time":                        TypeTime,
	"timetz":                      TypeTime,
	"time without time zone":      TypeTime,
	"time with time zone":         TypeTime,

	"text":       TypeText,
	"tinytext":   TypeText,
	"mediumtext": TypeText,
	"longtext":   TypeText,
	"clob":       TypeText,

	"blob":       TypeBlob,
	"tinyblob":   TypeBlob,
	"mediumblob": TypeBlob,
	"longblob":   TypeBlob,
	"binary":     TypeBlob,
	"varbinary":  TypeBlob,
	"bytea":      TypeBlob,
}

// TypeFromDatabase maps a declared column type such as "varchar(255)",
// "tinyint(1) unsigned" or "timestamp with time zone" onto a TypeTag.
// MySQL's tinyint(1) is the conventional boolean and maps to TypeBoolean.
func TypeFromDatabase(raw string) TypeTag {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return TypeOther
	}
	if strings.HasPrefix(normalized, "tinyint(1)") {
		return TypeBoolean
	}

	base, _, _ := strings.Cut(normalized, "(")
	base = strings.TrimSpace(base)
	if tag, ok := databaseTypes[base]; ok {
		return tag
	}

	// strip modifiers such as "unsigned" or "zerofill"
	if head, _, found := strings.Cut(base, " "); found {
		if tag, ok := databaseTypes[head]; ok {
			return tag
		}
	}
	return TypeOther
}
