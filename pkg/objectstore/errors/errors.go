package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var ErrClassNotFound = fmt.Errorf("class not found")
var ErrClassNotSpecified = fmt.Errorf("class not specified")
var ErrObjectNameNotSpecified = fmt.Errorf("object name not specified")
var ErrAttributeNotFound = fmt.Errorf("attribute not found")
var ErrTypeMismatch = fmt.Errorf("type mismatch")
var ErrFormat = fmt.Errorf("format error")
var ErrInvalidHierarchy = fmt.Errorf("invalid hierarchy")
var ErrRemoteUnavailable = fmt.Errorf("remote unavailable")
var ErrReferenceNotFound = fmt.Errorf("referenced object not found")

var ErrNotFound = fmt.Errorf("not found")
var ErrBadRequest = fmt.Errorf("bad request")
var ErrUnauthorized = fmt.Errorf("unauthorized")
var ErrInternal = fmt.Errorf("internal error")

func Is(err, target error) bool {
	return errors.Is(err, target)
}

type myError struct {
	msg    string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

func NewClassNotFoundError(className string) error {
	return &myError{
		msg:    fmt.Sprintf("class %q not found", className),
		target: ErrClassNotFound,
	}
}

func NewClassNotSpecifiedError() error {
	return &myError{
		msg:    "record does not name a class",
		target: ErrClassNotSpecified,
	}
}

func NewObjectNameNotSpecifiedError() error {
	return &myError{
		msg:    "record does not name the object",
		target: ErrObjectNameNotSpecified,
	}
}

func NewAttributeNotFoundError(className, attributeName string) error {
	return &myError{
		msg:    fmt.Sprintf("attribute %q not found on class %q", attributeName, className),
		target: ErrAttributeNotFound,
	}
}

func NewTypeMismatchError(attributeName, expected string, value any) error {
	return &myError{
		msg:    fmt.Sprintf("value %v (%T) for attribute %q is not compatible with type %s", value, value, attributeName, expected),
		target: ErrTypeMismatch,
	}
}

func NewFormatError(attributeName string, value any) error {
	return &myError{
		msg:    fmt.Sprintf("value %v for attribute %q has an unexpected format", value, attributeName),
		target: ErrFormat,
	}
}

func NewReferenceNotFoundError(attributeName, value, msg string) error {
	return &myError{
		msg:    fmt.Sprintf("reference %q for attribute %q: %s", value, attributeName, msg),
		target: ErrReferenceNotFound,
	}
}

func NewInvalidHierarchyError(row, level int, msg string) error {
	return &myError{
		msg:    fmt.Sprintf("row %d (level %d): %s", row, level, msg),
		target: ErrInvalidHierarchy,
	}
}

func NewRemoteUnavailableError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrRemoteUnavailable,
	}
}

func NewNotFoundError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrNotFound,
	}
}

func NewBadRequestError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrBadRequest,
	}
}

func NewUnauthorizedError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrUnauthorized,
	}
}

func NewInternalError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrInternal,
	}
}

// NewErrorFromResponse maps an unsuccessful response from the object store to
// one of the error kinds above. The store reports problems either as a plain
// text body or as a json object carrying a Message or Error field.
func NewErrorFromResponse(code int, body []byte) error {
	detail := extractDetail(body)
	msg := fmt.Sprintf("[code: %d] %s", code, detail)

	switch {
	case code == http.StatusNotFound:
		return NewNotFoundError(msg)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return NewUnauthorizedError(msg)
	case code == http.StatusBadRequest || code == http.StatusConflict || code == http.StatusUnprocessableEntity:
		return NewBadRequestError(msg)
	case code == http.StatusTooManyRequests || code >= http.StatusInternalServerError:
		return NewRemoteUnavailableError(msg)
	}

	return NewInternalError(fmt.Sprintf("unexpected response %s", msg))
}

func extractDetail(body []byte) string {
	if len(body) == 0 {
		return "no details"
	}

	report := struct {
		Message string `json:"Message"`
		Error   string `json:"error"`
		Detail  string `json:"error_description"`
	}{}

	if err := json.Unmarshal(body, &report); err == nil {
		for _, s := range []string{report.Message, report.Detail, report.Error} {
			if s != "" {
				return s
			}
		}
	}

	const maxDetailLength = 256
	if len(body) > maxDetailLength {
		return string(body[:maxDetailLength]) + "..."
	}

	return string(body)
}
