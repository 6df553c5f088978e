package schema_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-resourcegen/pkg/schema"
)

func TestTypeFromDatabase(t *testing.T) {
	cases := map[string]schema.TypeTag{
		"tinyint(1)":                  schema.TypeBoolean,
		"TINYINT(1) UNSIGNED":         schema.TypeBoolean,
		"boolean":                     schema.TypeBoolean,
		"json":                        schema.TypeJSON,
		"jsonb":                       schema.TypeJSON,
		"varchar(255)":                schema.TypeString,
		"character varying(64)":       schema.TypeString,
		"enum('draft','published')":   schema.TypeString,
		"point":                       schema.TypeString,
		"multipolygon":                schema.TypeString,
		"int(10) unsigned":            schema.TypeInteger,
		"int unsigned":                schema.TypeInteger,
		"bigint(20)":                  schema.TypeBigInt,
		"tinyint(4)":                  schema.TypeSmallInt,
		"double precision":            schema.TypeFloat,
		"decimal(8,2)":                schema.TypeDecimal,
		"timestamp":                   schema.TypeDateTime,
		"timestamp(6) with time zone": schema.TypeDateTime,
		"date":                        schema.TypeDate,
		"time":                        schema.TypeTime,
		"longtext":                    schema.TypeText,
		"bytea":                       schema.TypeBlob,
		"tsvector":                    schema.TypeOther,
		"":                            schema.TypeOther,
	}

	for raw, want := range cases {
		if got := schema.TypeFromDatabase(raw); got != want {
			t.Errorf("TypeFromDatabase(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestTypeTagString(t *testing.T) {
	if got := schema.TypeDateTime.String(); got != "datetime" {
		t.Fatalf("unexpected name %q", got)
	}
	if got := schema.TypeTag(99).String(); got != "other" {
		t.Fatalf("out of range tag should report other, got %q", got)
	}
	if !schema.TypeSmallInt.IsInteger() || schema.TypeFloat.IsInteger() {
		t.Fatalf("IsInteger mismatch")
	}
}

func TestParseTableRef(t *testing.T) {
	cases := map[string]schema.TableRef{
		"users":            {Name: "users"},
		"shop.orders":      {Database: "shop", Name: "orders"},
		"shop.archive.old": {Database: "shop", Name: "archive.old"},
		".hidden":          {Name: ".hidden"},
		"  spaced  ":       {Name: "spaced"},
	}
	for input, want := range cases {
		if diff := cmp.Diff(want, schema.ParseTableRef(input)); diff != "" {
			t.Errorf("ParseTableRef(%q) mismatch (-want +got):\n%s", input, diff)
		}
	}

	if got := (schema.TableRef{Database: "shop", Name: "orders"}).String(); got != "shop.orders" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestColumnDefaultValue(t *testing.T) {
	col := schema.Column{Name: "status"}
	if col.HasDefault() || col.DefaultValue() != "" {
		t.Fatalf("column without default should report empty default")
	}
	col.Default = schema.StringPtr("draft")
	if !col.HasDefault() || col.DefaultValue() != "draft" {
		t.Fatalf("unexpected default %q", col.DefaultValue())
	}
}
