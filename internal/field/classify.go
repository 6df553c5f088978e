package field

import (
	"github.com/goliatone/go-resourcegen/pkg/schema"
)

// Default expressions injected for temporal columns.
const (
	NowDateTime = "date('Y-m-d H:i:s')"
	NowDate     = "date('Y-m-d')"
	NowTime     = "date('H:i:s')"
)

// Classification is the widget and default expression chosen for a column.
type Classification struct {
	Widget  string
	Default string
}

// Classifier maps columns onto widgets. The zero value uses the built-in
// name rules.
type Classifier struct {
	rules []Rule
}

// NewClassifier constructs a classifier evaluating the supplied name rules in
// order. With no rules the built-in table is used.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// Classify resolves the widget and default expression for column. Name rules
// only refine string columns; every other category is decided by its type.
func (c *Classifier) Classify(column schema.Column) Classification {
	rules := defaultRules
	if c != nil && len(c.rules) > 0 {
		rules = c.rules
	}

	var widget, expr string
	switch t := column.Type; {
	case t == schema.TypeBoolean:
		widget = WidgetSwitch
	case t == schema.TypeJSON:
		widget = WidgetText
	case t == schema.TypeString:
		widget = MatchName(rules, column.Name)
		expr = quote(column.DefaultValue())
	case t.IsInteger():
		widget = WidgetNumber
	case t == schema.TypeFloat || t == schema.TypeDecimal:
		widget = WidgetDecimal
	case t == schema.TypeDateTime:
		widget = WidgetDateTime
		expr = NowDateTime
	case t == schema.TypeDate:
		widget = WidgetDate
		expr = NowDate
	case t == schema.TypeTime:
		widget = WidgetTime
		expr = NowTime
	case t == schema.TypeText || t == schema.TypeBlob:
		widget = WidgetTextarea
	default:
		widget = WidgetText
		expr = quote(column.DefaultValue())
	}

	if expr == "" {
		expr = column.DefaultValue()
	}
	return Classification{Widget: widget, Default: expr}
}

// Classify uses the built-in rule table.
func Classify(column schema.Column) Classification {
	return (*Classifier)(nil).Classify(column)
}

func quote(value string) string {
	return "'" + value + "'"
}
