package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/matryer/is"
)

func TestErrorsFromResponseMapToKinds(t *testing.T) {
	is := is.New(t)

	testData := []struct {
		code   int
		target error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusConflict, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusTooManyRequests, ErrRemoteUnavailable},
		{http.StatusBadGateway, ErrRemoteUnavailable},
		{http.StatusTeapot, ErrInternal},
	}

	for _, td := range testData {
		err := NewErrorFromResponse(td.code, nil)
		is.True(errors.Is(err, td.target)) // error should match its kind
	}
}

func TestErrorFromResponseUsesMessageFromBody(t *testing.T) {
	is := is.New(t)

	err := NewErrorFromResponse(http.StatusBadRequest, []byte(`{"Message":"name is required"}`))
	is.Equal(err.Error(), "[code: 400] name is required")
}

func TestErrorFromResponseTruncatesLongBodies(t *testing.T) {
	is := is.New(t)

	body := make([]byte, 1000)
	for i := range body {
		body[i] = 'x'
	}

	err := NewErrorFromResponse(http.StatusInternalServerError, body)
	is.True(len(err.Error()) < 300)
}

func TestErrorKindsDoNotMatchEachOther(t *testing.T) {
	is := is.New(t)

	err := NewClassNotFoundError("Pump")
	is.True(errors.Is(err, ErrClassNotFound))
	is.True(!errors.Is(err, ErrAttributeNotFound))
	is.Equal(err.Error(), `class "Pump" not found`)
}

func TestReferenceNotFoundNamesAttributeAndValue(t *testing.T) {
	is := is.New(t)

	err := NewReferenceNotFoundError("Статус", "Да", "no object with that name")
	is.True(errors.Is(err, ErrReferenceNotFound))
	is.True(!errors.Is(err, ErrNotFound))
	is.Equal(err.Error(), `reference "Да" for attribute "Статус": no object with that name`)
}
