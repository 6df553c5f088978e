package field

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var labelReplacer = strings.NewReplacer("-", " ", "_", " ")

// FormatLabel turns a column name into a label by replacing dashes and
// underscores with spaces and upper-casing the first character. Only the first
// character changes case: "first_name" becomes "First name".
func FormatLabel(name string) string {
	if name == "" {
		return ""
	}
	replaced := labelReplacer.Replace(name)
	r, size := utf8.DecodeRuneInString(replaced)
	if r == utf8.RuneError || !unicode.IsLower(r) {
		return replaced
	}
	return string(unicode.ToUpper(r)) + replaced[size:]
}
