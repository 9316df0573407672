package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestAccessIsGrantedByPolicy(t *testing.T) {
	is, a := setupTest(t)

	r := httptest.NewRequest("POST", "/api/v0/imports?parent=root", nil)
	r.Header.Add("Authorization", "Bearer letmein")

	is.NoErr(a.CheckAccess(context.Background(), r, "root"))
}

func TestAccessIsDeniedByPolicy(t *testing.T) {
	is, a := setupTest(t)

	r := httptest.NewRequest("DELETE", "/api/v0/objects/o1", nil)
	r.Header.Add("Authorization", "Bearer readonly")

	err := a.CheckAccess(context.Background(), r, "")
	is.True(errors.Is(err, ErrAccessDenied))
}

func TestReadOnlyTokenCanRead(t *testing.T) {
	is, a := setupTest(t)

	r := httptest.NewRequest("GET", "/api/v0/objects/o1", nil)
	r.Header.Add("Authorization", "Bearer readonly")

	is.NoErr(a.CheckAccess(context.Background(), r, ""))
}

func TestBrokenPolicyIsRejected(t *testing.T) {
	is := is.New(t)

	_, err := NewAuthenticator(context.Background(), strings.NewReader("package example.authz\nallow :="))
	is.True(err != nil) // policy should not compile
}

func setupTest(t *testing.T) (*is.I, Enticator) {
	is := is.New(t)

	a, err := NewAuthenticator(context.Background(), strings.NewReader(policy))
	is.NoErr(err)

	return is, a
}

const policy string = `package example.authz

default allow := false

allow = response {
	input.token == "letmein"
	response := {"role": "writer"}
}

allow = response {
	input.token == "readonly"
	input.method == "GET"
	response := {"role": "reader"}
}
`
