package openapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-resourcegen/internal/field"
	"github.com/goliatone/go-resourcegen/pkg/schema"
)

// Version is the OpenAPI version written by Document.
const Version = "3.0.3"

var widgetFormats = map[string]string{
	field.WidgetEmail:    "email",
	field.WidgetURL:      "uri",
	field.WidgetPassword: "password",
	field.WidgetIP:       "ipv4",
}

// SchemaFromColumns builds an object schema with one property per column.
// Columns that are neither nullable nor defaulted are listed as required.
func SchemaFromColumns(title string, columns []schema.Column) *openapi3.Schema {
	object := openapi3.NewObjectSchema()
	object.Title = title

	for _, column := range columns {
		property := propertyFor(column)
		object.WithProperty(column.Name, property)
		if !column.Nullable && !column.HasDefault() {
			object.Required = append(object.Required, column.Name)
		}
	}
	return object
}

func propertyFor(column schema.Column) *openapi3.Schema {
	var property *openapi3.Schema
	switch column.Type {
	case schema.TypeBoolean:
		property = openapi3.NewBoolSchema()
		if value, err := strconv.ParseBool(column.DefaultValue()); err == nil {
			property.Default = value
		}
	case schema.TypeInteger, schema.TypeSmallInt:
		property = openapi3.NewIntegerSchema()
		setNumericDefault(property, column)
	case schema.TypeBigInt:
		property = openapi3.NewInt64Schema()
		setNumericDefault(property, column)
	case schema.TypeFloat, schema.TypeDecimal:
		property = openapi3.NewFloat64Schema()
		setNumericDefault(property, column)
	case schema.TypeDateTime:
		property = openapi3.NewDateTimeSchema()
	case schema.TypeDate:
		property = openapi3.NewStringSchema().WithFormat("date")
	case schema.TypeTime:
		property = openapi3.NewStringSchema().WithFormat("time")
	case schema.TypeBlob:
		property = openapi3.NewStringSchema().WithFormat("binary")
	case schema.TypeJSON:
		property = openapi3.NewObjectSchema()
	default:
		property = openapi3.NewStringSchema()
		if format, ok := widgetFormats[field.Classify(column).Widget]; ok && column.Type == schema.TypeString {
			property.Format = format
		}
		if column.HasDefault() {
			property.Default = column.DefaultValue()
		}
	}

	if column.Nullable {
		property.Nullable = true
	}
	property.Title = field.FormatLabel(column.Name)
	property.Description = strings.TrimSpace(column.Comment)
	if column.RawType != "" {
		property.Extensions = map[string]any{"x-db-type": column.RawType}
	}
	return property
}

func setNumericDefault(property *openapi3.Schema, column schema.Column) {
	if !column.HasDefault() {
		return
	}
	if value, err := strconv.ParseFloat(column.DefaultValue(), 64); err == nil {
		property.Default = value
	}
}

// SchemaName returns the component name for a table ("blog_posts" becomes
// "BlogPosts").
func SchemaName(table string) string {
	return strcase.ToCamel(table)
}

// Document wraps the table schema in a minimal OpenAPI document under
// components.schemas.
func Document(table string, columns []schema.Column) *openapi3.T {
	name := SchemaName(table)
	return &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   name,
			Version: "1.0.0",
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				name: openapi3.NewSchemaRef("", SchemaFromColumns(name, columns)),
			},
		},
	}
}

// Marshal encodes doc as "yaml" (the default) or "json".
func Marshal(doc *openapi3.T, format string) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("openapi: document is required")
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "yaml", "yml":
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("openapi: marshal yaml: %w", err)
		}
		return out, nil
	case "json":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("openapi: marshal: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("openapi: unsupported format %q", format)
	}
}
