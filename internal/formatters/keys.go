package formatters

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"response-mapper/internal/match"
	"response-mapper/internal/node"
)

// CamelCase converts a key such as "in_system_name" or "Estimated-EOL" to
// lower camel case ("inSystemName", "estimatedEol").
func CamelCase(key string) string {
	words := match.SplitWords(key)
	if len(words) == 0 {
		return key
	}

	lower := cases.Lower(language.Und)
	title := cases.Title(language.Und)

	var b strings.Builder

	b.WriteString(lower.String(words[0]))

	for _, w := range words[1:] {
		b.WriteString(title.String(w))
	}

	return b.String()
}

// CamelCaseKeys converts the keys of a record value to camel case. Only
// the record's own keys change; nested values are copied as they are. When
// two keys convert to the same name the later one wins.
func CamelCaseKeys(value any, _ string, _ node.View) (any, error) {
	rec, ok := value.(*node.Record)
	if !ok || rec == nil {
		return value, nil
	}

	out := node.NewRecord()
	for k, v := range rec.All() {
		out.Set(CamelCase(k), node.Clone(v))
	}

	return out, nil
}
