package problems

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/diwise/object-importer/pkg/objectstore/errors"
)

// ProblemDetails stores details about a certain problem according to RFC7807
// See https://tools.ietf.org/html/rfc7807
type ProblemDetails interface {
	ContentType() string
	ResponseCode() int
	MarshalJSON() ([]byte, error)
	WriteResponse(w http.ResponseWriter)
}

type ProblemDetailsImpl struct {
	typ    string
	title  string
	detail string
	code   int
}

const (
	// ProblemReportContentType as required by https://tools.ietf.org/html/rfc7807
	ProblemReportContentType string = "application/problem+json"

	problemTypeBase string = "https://diwise.io/object-importer/errors/"
)

func newProblem(typ, title, detail string, code int) *ProblemDetailsImpl {
	return &ProblemDetailsImpl{
		typ:    problemTypeBase + typ,
		title:  title,
		detail: detail,
		code:   code,
	}
}

func NewBadRequestData(detail string) *ProblemDetailsImpl {
	return newProblem("BadRequestData", "Bad Request Data", detail, http.StatusBadRequest)
}

func NewInvalidRequest(detail string) *ProblemDetailsImpl {
	return newProblem("InvalidRequest", "Invalid Request", detail, http.StatusBadRequest)
}

// NewUnprocessableData reports input that is well formed but does not fit the schema of the store
func NewUnprocessableData(detail string) *ProblemDetailsImpl {
	return newProblem("UnprocessableData", "Unprocessable Data", detail, http.StatusUnprocessableEntity)
}

func NewNotFound(detail string) *ProblemDetailsImpl {
	return newProblem("ResourceNotFound", "Not Found", detail, http.StatusNotFound)
}

func NewUnauthorizedRequest(detail string) *ProblemDetailsImpl {
	return newProblem("UnauthorizedRequest", "Unauthorized Request", detail, http.StatusUnauthorized)
}

func NewForbidden(detail string) *ProblemDetailsImpl {
	return newProblem("Forbidden", "Forbidden", detail, http.StatusForbidden)
}

func NewServiceUnavailable(detail string) *ProblemDetailsImpl {
	return newProblem("ServiceUnavailable", "Service Unavailable", detail, http.StatusServiceUnavailable)
}

func NewInternalError(detail string) *ProblemDetailsImpl {
	return newProblem("InternalError", "Internal Error", detail, http.StatusInternalServerError)
}

// FromError maps an error of the object store taxonomy to a problem report
func FromError(err error) ProblemDetails {
	detail := err.Error()

	switch {
	case errors.Is(err, errors.ErrClassNotSpecified),
		errors.Is(err, errors.ErrObjectNameNotSpecified),
		errors.Is(err, errors.ErrInvalidHierarchy),
		errors.Is(err, errors.ErrBadRequest):
		return NewBadRequestData(detail)
	case errors.Is(err, errors.ErrClassNotFound),
		errors.Is(err, errors.ErrAttributeNotFound),
		errors.Is(err, errors.ErrTypeMismatch),
		errors.Is(err, errors.ErrFormat),
		errors.Is(err, errors.ErrReferenceNotFound):
		return NewUnprocessableData(detail)
	case errors.Is(err, errors.ErrNotFound):
		return NewNotFound(detail)
	case errors.Is(err, errors.ErrUnauthorized):
		return NewUnauthorizedRequest(detail)
	case errors.Is(err, errors.ErrRemoteUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return NewServiceUnavailable(detail)
	}

	return NewInternalError(detail)
}

func ReportError(w http.ResponseWriter, err error) {
	FromError(err).WriteResponse(w)
}

func (p *ProblemDetailsImpl) ContentType() string {
	return ProblemReportContentType
}

func (p *ProblemDetailsImpl) Title() string  { return p.title }
func (p *ProblemDetailsImpl) Detail() string { return p.detail }

// MarshalJSON is called when a ProblemDetailsImpl instance should be serialized to JSON
func (p *ProblemDetailsImpl) MarshalJSON() ([]byte, error) {
	j, err := json.Marshal(struct {
		Type   string `json:"type"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}{
		Type:   p.typ,
		Title:  p.title,
		Detail: p.detail,
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

// ResponseCode returns the HTTP response code to be used when returning a specific problem
func (p *ProblemDetailsImpl) ResponseCode() int {

	if p.code != 0 {
		return p.code
	}

	return http.StatusBadRequest
}

// WriteResponse writes the contents of this instance to a http.ResponseWriter
func (p *ProblemDetailsImpl) WriteResponse(w http.ResponseWriter) {
	w.Header().Add("Content-Type", p.ContentType())
	w.Header().Add("Content-Language", "en")
	w.WriteHeader(p.ResponseCode())

	pdbytes, err := json.MarshalIndent(p, "", "  ")
	if err == nil {
		w.Write(pdbytes)
	}
}
