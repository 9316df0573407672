package problems

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/matryer/is"
)

func TestErrorsMapToResponseCodes(t *testing.T) {
	is := is.New(t)

	cases := []struct {
		err  error
		code int
	}{
		{errors.NewClassNotSpecifiedError(), http.StatusBadRequest},
		{errors.NewInvalidHierarchyError(2, 3, "jump"), http.StatusBadRequest},
		{errors.NewClassNotFoundError("Pump"), http.StatusUnprocessableEntity},
		{errors.NewTypeMismatchError("Count", "integer", "x"), http.StatusUnprocessableEntity},
		{errors.NewReferenceNotFoundError("Status", "Yes", "missing"), http.StatusUnprocessableEntity},
		{errors.NewNotFoundError("gone"), http.StatusNotFound},
		{errors.NewUnauthorizedError("no"), http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", errors.NewRemoteUnavailableError("x")), http.StatusServiceUnavailable},
		{fmt.Errorf("something else"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		is.Equal(FromError(c.err).ResponseCode(), c.code) // unexpected response code
	}
}

func TestWriteResponse(t *testing.T) {
	is := is.New(t)
	w := httptest.NewRecorder()

	ReportError(w, errors.NewNotFoundError("object o1 not found"))

	is.Equal(w.Code, http.StatusNotFound)
	is.Equal(w.Header().Get("Content-Type"), ProblemReportContentType)

	body := map[string]string{}
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &body))
	is.Equal(body["title"], "Not Found")
	is.Equal(body["type"], "https://diwise.io/object-importer/errors/ResourceNotFound")
}
