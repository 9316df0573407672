package blueprint

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Record is an untyped description of one object. It is either a Fields map
// or a Row produced by a tabular reader.
type Record interface {
	normalize(aliases Aliases) normalized
}

// Fields is a record given as a plain name/value mapping. The class and the
// object name are found among the keys by alias.
type Fields map[string]any

// Row is one parsed line of a hierarchical import. Fields hold the cell text as
// written; it is converted once the attribute it binds to is known.
type Row struct {
	Level          int            `json:"level"`
	ClassName      string         `json:"className"`
	ObjectName     string         `json:"objectName"`
	Fields         map[string]any `json:"fields,omitempty"`
	SourceRowIndex int            `json:"row"`
}

type normalized struct {
	className  string
	objectName string
	fields     map[string]any
	cellText   bool
}

func (f Fields) normalize(aliases Aliases) normalized {
	n := normalized{fields: maps.Clone(map[string]any(f))}
	if n.fields == nil {
		n.fields = map[string]any{}
	}

	if key, ok := findKey(n.fields, aliases.Class); ok {
		n.className = text(n.fields[key])
		delete(n.fields, key)
	}

	if key, ok := findKey(n.fields, aliases.Name); ok {
		n.objectName = text(n.fields[key])
		delete(n.fields, key)
	}

	if key, ok := findKey(n.fields, aliases.Level); ok {
		delete(n.fields, key)
	}

	return n
}

func (r Row) normalize(aliases Aliases) normalized {
	n := normalized{
		className:  strings.TrimSpace(r.ClassName),
		objectName: strings.TrimSpace(r.ObjectName),
		fields:     maps.Clone(r.Fields),
		cellText:   true,
	}

	if n.fields == nil {
		n.fields = map[string]any{}
	}

	for _, roleAliases := range [][]string{aliases.Class, aliases.Name, aliases.Level} {
		if key, ok := findKey(n.fields, roleAliases); ok {
			delete(n.fields, key)
		}
	}

	return n
}

// findKey returns the first key that matches one of the aliases. Aliases are
// tried in order with an exact comparison before any case insensitive one.
func findKey(fields map[string]any, aliases []string) (string, bool) {
	for _, alias := range aliases {
		if _, ok := fields[alias]; ok {
			return alias, true
		}
	}

	keys := slices.Sorted(maps.Keys(fields))

	for _, alias := range aliases {
		for _, key := range keys {
			if strings.EqualFold(strings.TrimSpace(key), alias) {
				return key, true
			}
		}
	}

	return "", false
}

func text(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case fmt.Stringer:
		return strings.TrimSpace(s.String())
	}
	return strings.TrimSpace(fmt.Sprint(v))
}
