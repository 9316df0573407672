package values

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/diwise/object-importer/pkg/objectstore/types"
	"github.com/google/uuid"
)

// DateTimeLayout is the only date time format exchanged with the store
const DateTimeLayout string = "2006-01-02T15:04:05Z"

// ToWire converts a native value into the representation the store expects for
// the given attribute. A nil value is always sent as null.
//
// Canonical native types are string, int64, float64, bool, time.Time (UTC, whole
// seconds) and string identifiers for references.
func ToWire(def types.AttributeDef, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch def.Type {
	case types.String:
		s, ok := stringify(v)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, "string", v)
		}
		return s, nil
	case types.Integer:
		i, ok := toInt64(v)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, "integer", v)
		}
		return i, nil
	case types.Float:
		f, ok := toFloat64(v)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, "float", v)
		}
		return f, nil
	case types.Boolean:
		b, ok := v.(bool)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, "boolean", v)
		}
		return b, nil
	case types.DateTime:
		t, ok := v.(time.Time)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, "timestamp", v)
		}
		return t.UTC().Format(DateTimeLayout), nil
	case types.Reference:
		id, ok := identifier(v)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, "identifier", v)
		}
		return map[string]any{"Id": id}, nil
	}

	return nil, errors.NewTypeMismatchError(def.Name, string(def.Type), v)
}

// FromWire converts a value received from the store into its native form
func FromWire(def types.AttributeDef, w any) (any, error) {
	if w == nil {
		return nil, nil
	}

	switch def.Type {
	case types.String:
		s, ok := stringify(w)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, "string", w)
		}
		return s, nil
	case types.Integer:
		if s, ok := w.(string); ok {
			w = json.Number(s)
		}
		i, ok := toInt64(w)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, "integer", w)
		}
		return i, nil
	case types.Float:
		if s, ok := w.(string); ok {
			w = json.Number(s)
		}
		f, ok := toFloat64(w)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, "float", w)
		}
		return f, nil
	case types.Boolean:
		b, ok := w.(bool)
		if !ok {
			return nil, errors.NewTypeMismatchError(def.Name, "boolean", w)
		}
		return b, nil
	case types.DateTime:
		s, ok := w.(string)
		if !ok {
			return nil, errors.NewFormatError(def.Name, w)
		}
		t, err := time.Parse(DateTimeLayout, s)
		// time.Parse accepts fractional seconds that the layout does not mention
		if err != nil || t.Format(DateTimeLayout) != s {
			return nil, errors.NewFormatError(def.Name, w)
		}
		return t, nil
	case types.Reference:
		switch ref := w.(type) {
		case map[string]any:
			id, ok := identifier(ref["Id"])
			if !ok {
				return nil, errors.NewFormatError(def.Name, w)
			}
			return id, nil
		case string:
			if ref == "" {
				return nil, errors.NewFormatError(def.Name, w)
			}
			return ref, nil
		}
		return nil, errors.NewTypeMismatchError(def.Name, "reference", w)
	}

	return nil, errors.NewTypeMismatchError(def.Name, string(def.Type), w)
}

// Canonical returns the native value v would have after a round trip through
// the store.
func Canonical(def types.AttributeDef, v any) (any, error) {
	w, err := ToWire(def, v)
	if err != nil {
		return nil, err
	}
	return FromWire(def, w)
}

// Equal compares two canonical native values
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}

	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return reflect.DeepEqual(a, b)
	}

	return a == b
}

func stringify(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case json.Number:
		return s.String(), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case time.Time:
		return s.UTC().Format(DateTimeLayout), true
	case fmt.Stringer:
		return s.String(), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	}

	return "", false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return integral(f)
	case float32:
		return integral(float64(n))
	case float64:
		return integral(n)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	}

	return 0, false
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}

	return 0, false
}

func identifier(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case uuid.UUID:
		return id.String(), id != uuid.Nil
	case fmt.Stringer:
		s := id.String()
		return s, s != ""
	}
	return "", false
}
