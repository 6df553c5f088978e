package introspect

import (
	"database/sql"
	"regexp"
	"strings"

	"github.com/goliatone/go-resourcegen/pkg/schema"
)

const castIdent = `(?:"(?:[^"]|"")+"|[a-zA-Z_][a-zA-Z0-9_ ]*)`

// castSuffix matches a trailing PostgreSQL cast such as ::text,
// ::character varying(10)[] or ::public."Status".
var castSuffix = regexp.MustCompile(`::` + castIdent + `(?:\.` + castIdent + `)?(?:\([0-9, ]*\))?(?:\[\])?$`)

// normalizeDefault turns a catalog default into the literal value the column
// falls back to. Quoted literals are unquoted, NULL becomes no default and
// sequence defaults (auto increment keys) are dropped. Expressions such as
// CURRENT_TIMESTAMP are returned verbatim.
func normalizeDefault(raw sql.NullString) *string {
	if !raw.Valid {
		return nil
	}
	value := strings.TrimSpace(raw.String)
	if strings.EqualFold(value, "null") || strings.HasPrefix(strings.ToLower(value), "nextval(") {
		return nil
	}
	for castSuffix.MatchString(value) {
		value = strings.TrimSpace(castSuffix.ReplaceAllString(value, ""))
	}
	if strings.EqualFold(value, "null") {
		return nil
	}
	if len(value) >= 2 && value[0] == '\'' && value[len(value)-1] == '\'' {
		value = strings.ReplaceAll(value[1:len(value)-1], "''", "'")
	}
	return schema.StringPtr(value)
}

func nullable(flag string) bool {
	return strings.EqualFold(strings.TrimSpace(flag), "yes")
}
