package field

import (
	"regexp"
	"strings"
)

// Widget identifiers emitted in form declarations.
const (
	WidgetText     = "text"
	WidgetSwitch   = "switch"
	WidgetNumber   = "number"
	WidgetDecimal  = "decimal"
	WidgetDateTime = "datetime"
	WidgetDate     = "date"
	WidgetTime     = "time"
	WidgetTextarea = "textarea"
	WidgetIP       = "ip"
	WidgetEmail    = "email"
	WidgetPassword = "password"
	WidgetURL      = "url"
	WidgetMobile   = "mobile"
	WidgetColor    = "color"
	WidgetImage    = "image"
	WidgetFile     = "file"
)

// Rule maps a widget to the column names it applies to. Pattern holds the
// alternatives of an anchored, case-insensitive expression.
type Rule struct {
	Widget  string
	Pattern string
	re      *regexp.Regexp
}

// Match reports whether the whole column name matches the rule.
func (r Rule) Match(name string) bool {
	if r.re == nil {
		return false
	}
	return r.re.MatchString(name)
}

// NewRule compiles a rule. Pattern is wrapped as (?i)^(pattern)$.
func NewRule(widget, pattern string) (Rule, error) {
	re, err := regexp.Compile("(?i)^(" + pattern + ")$")
	if err != nil {
		return Rule{}, err
	}
	return Rule{Widget: strings.TrimSpace(widget), Pattern: pattern, re: re}, nil
}

func mustRule(widget, pattern string) Rule {
	rule, err := NewRule(widget, pattern)
	if err != nil {
		panic(err)
	}
	return rule
}

// defaultRules is evaluated top to bottom; the first match wins.
var defaultRules = []Rule{
	mustRule(WidgetIP, "ip"),
	mustRule(WidgetEmail, "email|mail"),
	mustRule(WidgetPassword, "password|pwd"),
	mustRule(WidgetURL, "url|link|src|href"),
	mustRule(WidgetMobile, "mobile|phone"),
	mustRule(WidgetColor, "color|rgb"),
	mustRule(WidgetImage, "image|img|avatar|pic|picture|cover"),
	mustRule(WidgetFile, "file|attachment"),
}

// DefaultRules returns a copy of the built-in rule table in evaluation order.
func DefaultRules() []Rule {
	return append([]Rule(nil), defaultRules...)
}

// MatchName returns the widget of the first rule matching name, or
// WidgetText when none does.
func MatchName(rules []Rule, name string) string {
	for _, rule := range rules {
		if rule.Match(name) {
			return rule.Widget
		}
	}
	return WidgetText
}
