package values

import (
	"strconv"
	"strings"
	"time"

	"github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/diwise/object-importer/pkg/objectstore/types"
)

var textDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"02.01.2006",
	// built in date formats of xlsx workbooks
	"01-02-06",
	"1/2/06 15:04",
}

// FromText converts the text of a spreadsheet cell into the native value of the
// given attribute. Text bound to a string attribute is kept exactly as written.
// References are returned as written and may hold either an id or a name.
func FromText(def types.AttributeDef, s string) (any, error) {
	switch def.Type {
	case types.String, types.Reference:
		return s, nil
	case types.Integer:
		t := strings.TrimSpace(s)
		if i, err := strconv.ParseInt(t, 10, 64); err == nil {
			return i, nil
		}
		if f, ok := parseDecimal(t); ok {
			if i, ok := integral(f); ok {
				return i, nil
			}
		}
		return nil, errors.NewTypeMismatchError(def.Name, "integer", s)
	case types.Float:
		if f, ok := parseDecimal(strings.TrimSpace(s)); ok {
			return f, nil
		}
		return nil, errors.NewTypeMismatchError(def.Name, "float", s)
	case types.Boolean:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "да", "1":
			return true, nil
		case "false", "нет", "0":
			return false, nil
		}
		return nil, errors.NewTypeMismatchError(def.Name, "boolean", s)
	case types.DateTime:
		t := strings.TrimSpace(s)
		for _, layout := range textDateLayouts {
			if ts, err := time.Parse(layout, t); err == nil {
				return ts.UTC().Truncate(time.Second), nil
			}
		}
		return nil, errors.NewFormatError(def.Name, s)
	}

	return nil, errors.NewTypeMismatchError(def.Name, string(def.Type), s)
}

// parseDecimal accepts either a point or a comma as the decimal separator
func parseDecimal(s string) (float64, bool) {
	if strings.Count(s, ",")+strings.Count(s, ".") > 1 {
		return 0, false
	}

	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}

	return f, true
}
