package values

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	objecterrors "github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/diwise/object-importer/pkg/objectstore/types"
	"github.com/google/uuid"
	"github.com/matryer/is"
)

func def(t types.AttributeType) types.AttributeDef {
	return types.AttributeDef{ID: "a1", Name: "attr", Type: t}
}

func TestRoundTripForEveryType(t *testing.T) {
	is := is.New(t)

	testData := []struct {
		typ   types.AttributeType
		value any
	}{
		{types.String, "Насос №1"},
		{types.String, ""},
		{types.Integer, int64(42)},
		{types.Integer, int64(-7)},
		{types.Float, 3.25},
		{types.Float, float64(0)},
		{types.Boolean, true},
		{types.Boolean, false},
		{types.DateTime, time.Date(2024, 2, 29, 13, 45, 10, 0, time.UTC)},
		{types.Reference, "3aa54908-2283-ec11-911c-005056b6948b"},
	}

	for _, td := range testData {
		w, err := ToWire(def(td.typ), td.value)
		is.NoErr(err)

		v, err := FromWire(def(td.typ), w)
		is.NoErr(err)
		is.True(Equal(v, td.value)) // round trip should return the original value
	}
}

func TestNullIsNullForEveryType(t *testing.T) {
	is := is.New(t)

	for _, typ := range []types.AttributeType{types.String, types.Integer, types.Float, types.Boolean, types.DateTime, types.Reference} {
		w, err := ToWire(def(typ), nil)
		is.NoErr(err)
		is.Equal(w, nil)

		v, err := FromWire(def(typ), nil)
		is.NoErr(err)
		is.Equal(v, nil)
	}
}

func TestNumericCoercion(t *testing.T) {
	is := is.New(t)

	w, err := ToWire(def(types.Integer), 12)
	is.NoErr(err)
	is.Equal(w, int64(12))

	w, err = ToWire(def(types.Integer), 12.0)
	is.NoErr(err)
	is.Equal(w, int64(12))

	w, err = ToWire(def(types.Float), int32(3))
	is.NoErr(err)
	is.Equal(w, float64(3))

	v, err := FromWire(def(types.Integer), float64(1200))
	is.NoErr(err)
	is.Equal(v, int64(1200))

	v, err = FromWire(def(types.Float), json.Number("2.5"))
	is.NoErr(err)
	is.Equal(v, 2.5)
}

func TestNonNumericValuesAreTypeMismatch(t *testing.T) {
	is := is.New(t)

	_, err := ToWire(def(types.Integer), "twelve")
	is.True(errors.Is(err, objecterrors.ErrTypeMismatch))

	_, err = ToWire(def(types.Integer), 12.5)
	is.True(errors.Is(err, objecterrors.ErrTypeMismatch))

	_, err = ToWire(def(types.Float), true)
	is.True(errors.Is(err, objecterrors.ErrTypeMismatch))
}

func TestBooleanAcceptsOnlyBooleans(t *testing.T) {
	is := is.New(t)

	_, err := ToWire(def(types.Boolean), "true")
	is.True(errors.Is(err, objecterrors.ErrTypeMismatch))

	_, err = ToWire(def(types.Boolean), 1)
	is.True(errors.Is(err, objecterrors.ErrTypeMismatch))
}

func TestDateTimeWireFormatIsFixed(t *testing.T) {
	is := is.New(t)

	local := time.FixedZone("MSK", 3*60*60)
	w, err := ToWire(def(types.DateTime), time.Date(2023, 12, 1, 9, 30, 0, 500, local))
	is.NoErr(err)
	is.Equal(w, "2023-12-01T06:30:00Z")
}

func TestDateTimeParsingRejectsOtherFormats(t *testing.T) {
	is := is.New(t)

	for _, s := range []string{
		"2023-12-01",
		"2023-12-01T06:30:00",
		"2023-12-01T06:30:00.123Z",
		"2023-12-01T06:30:00+03:00",
		"01.12.2023 06:30:00",
	} {
		_, err := FromWire(def(types.DateTime), s)
		is.True(errors.Is(err, objecterrors.ErrFormat)) // other formats should be rejected
	}

	_, err := ToWire(def(types.DateTime), "2023-12-01T06:30:00Z")
	is.True(errors.Is(err, objecterrors.ErrTypeMismatch))
}

func TestReferenceWrapsIdentifier(t *testing.T) {
	is := is.New(t)

	id := uuid.New()
	w, err := ToWire(def(types.Reference), id)
	is.NoErr(err)
	is.Equal(w, map[string]any{"Id": id.String()})

	v, err := FromWire(def(types.Reference), map[string]any{"Id": id.String(), "Name": "Объект"})
	is.NoErr(err)
	is.Equal(v, id.String())
}

func TestStringStringifiesScalars(t *testing.T) {
	is := is.New(t)

	w, err := ToWire(def(types.String), int64(10001))
	is.NoErr(err)
	is.Equal(w, "10001")

	_, err = ToWire(def(types.String), []string{"a"})
	is.True(errors.Is(err, objecterrors.ErrTypeMismatch))
}

func TestUnsupportedTypeIsRejected(t *testing.T) {
	is := is.New(t)

	_, err := ToWire(def(types.Unsupported), "x")
	is.True(errors.Is(err, objecterrors.ErrTypeMismatch))
}
