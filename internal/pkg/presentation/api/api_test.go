package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diwise/object-importer/internal/pkg/application/blueprint"
	"github.com/diwise/object-importer/internal/pkg/application/importer"
	"github.com/diwise/object-importer/internal/pkg/application/objectimporter"
	"github.com/diwise/object-importer/pkg/objectstore/errors"
	"github.com/go-chi/chi/v5"
	"github.com/matryer/is"
)

func TestImport(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, "POST", "/api/v0/imports?parent=root", "text/csv", importCSV)

	is.Equal(resp.StatusCode, http.StatusOK) // Check status code
	is.Equal(len(app.ImportCalls()), 1)
	is.Equal(app.ImportCalls()[0].ParentID, "root")

	result := map[string]any{}
	is.NoErr(json.Unmarshal([]byte(body), &result))
	is.Equal(result["outcome"], "complete")
	is.Equal(result["runId"], "r1")
}

func TestImportAcceptsWorkbooks(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, "POST", "/api/v0/imports?parent=root", xlsxContentType, "PK\x03\x04")

	is.Equal(resp.StatusCode, http.StatusOK) // Check status code
	is.Equal(len(app.ImportCalls()), 1)
}

func TestImportWithoutParentIsBadRequest(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, "POST", "/api/v0/imports", "text/csv", importCSV)

	is.Equal(resp.StatusCode, http.StatusBadRequest) // Check status code
	is.Equal(len(app.ImportCalls()), 0)
}

func TestDryRunImportReturnsPreview(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, "POST", "/api/v0/imports?parent=root&dryRun=true", "text/csv", importCSV)

	is.Equal(resp.StatusCode, http.StatusOK) // Check status code
	is.Equal(len(app.PreviewCalls()), 1)
	is.Equal(len(app.ImportCalls()), 0)
}

func TestImportWithBrokenHierarchyIsBadRequest(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.ImportFunc = func(ctx context.Context, input io.Reader, parentID string) (*importer.ImportResult, error) {
		return nil, errors.NewInvalidHierarchyError(2, 3, "level jump")
	}

	resp, _ := newTestRequest(is, ts, "POST", "/api/v0/imports?parent=root", "text/csv", importCSV)

	is.Equal(resp.StatusCode, http.StatusBadRequest) // Check status code
}

func TestImportWithWrongContentTypeReturnsUnsupportedMediaType(t *testing.T) {
	is, ts, _ := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, "POST", "/api/v0/imports?parent=root", "application/x-www-form-urlencoded", importCSV)

	is.Equal(resp.StatusCode, http.StatusUnsupportedMediaType) // Check status code
}

func TestCreateObject(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, "POST", "/api/v0/objects?parent=root", "application/json", `{"Class":"Site","Name":"S","Count":12,"Installed":"2024-01-31T10:00:00Z"}`)

	is.Equal(resp.StatusCode, http.StatusCreated) // Check status code
	is.Equal(resp.Header.Get("Location"), "/api/v0/objects/o1")

	record := app.CreateObjectCalls()[0].Record
	is.Equal(record["Count"], json.Number("12"))
	is.Equal(record["Class"], "Site")
	_, isString := record["Installed"].(string)
	is.True(!isString) // timestamps should be decoded
}

func TestCreateObjectWithBadDataReturnsInvalidRequest(t *testing.T) {
	is, ts, _ := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, "POST", "/api/v0/objects?parent=root", "application/json", "this is not my json")

	is.Equal(resp.StatusCode, http.StatusBadRequest) // Check status code
}

func TestCreateObjectWithUnknownClass(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.CreateObjectFunc = func(ctx context.Context, parentID string, record blueprint.Fields) (*objectimporter.Object, error) {
		return nil, errors.NewClassNotFoundError("Pump")
	}

	resp, _ := newTestRequest(is, ts, "POST", "/api/v0/objects?parent=root", "application/json", `{"Class":"Pump","Name":"P"}`)

	is.Equal(resp.StatusCode, http.StatusUnprocessableEntity) // Check status code
}

func TestRetrieveObject(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, body := newTestRequest(is, ts, "GET", "/api/v0/objects/o1", "", "")

	is.Equal(resp.StatusCode, http.StatusOK) // Check status code
	is.Equal(app.ReadObjectCalls()[0].ObjectID, "o1")
	is.True(strings.Contains(body, `"className":"Site"`))
}

func TestRetrieveMissingObjectReturnsNotFound(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.ReadObjectFunc = func(ctx context.Context, objectID string) (*objectimporter.Object, error) {
		return nil, errors.NewNotFoundError("no such object")
	}

	resp, _ := newTestRequest(is, ts, "GET", "/api/v0/objects/o2", "", "")

	is.Equal(resp.StatusCode, http.StatusNotFound) // Check status code
}

func TestUpdateObject(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, "PATCH", "/api/v0/objects/o1", "application/json", `{"Count":13}`)

	is.Equal(resp.StatusCode, http.StatusNoContent) // Check status code
	is.Equal(app.UpdateObjectCalls()[0].ObjectID, "o1")
}

func TestDeleteObject(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	resp, _ := newTestRequest(is, ts, "DELETE", "/api/v0/objects/o1", "", "")

	is.Equal(resp.StatusCode, http.StatusNoContent) // Check status code
	is.Equal(len(app.DeleteObjectCalls()), 1)
}

func TestDeleteWhenStoreIsUnavailable(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	app.DeleteObjectFunc = func(ctx context.Context, objectID string) (bool, error) {
		return false, errors.NewRemoteUnavailableError("timeout")
	}

	resp, _ := newTestRequest(is, ts, "DELETE", "/api/v0/objects/o1", "", "")

	is.Equal(resp.StatusCode, http.StatusServiceUnavailable) // Check status code
}

func TestRequestWithoutValidTokenIsUnauthorized(t *testing.T) {
	is, ts, app := setupTest(t)
	defer ts.Close()

	req, _ := http.NewRequest("DELETE", ts.URL+"/api/v0/objects/o1", nil)
	req.Header.Add("Authorization", "Bearer wrong")

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err) // http request failed
	defer resp.Body.Close()

	is.Equal(resp.StatusCode, http.StatusUnauthorized) // Check status code
	is.Equal(len(app.DeleteObjectCalls()), 0)
}

func newTestRequest(is *is.I, ts *httptest.Server, method, path, contentType, body string) (*http.Response, string) {
	req, _ := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Add("Content-Type", contentType)
	}
	req.Header.Add("Authorization", "Bearer letmein")

	resp, err := http.DefaultClient.Do(req)
	is.NoErr(err) // http request failed
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	is.NoErr(err) // failed to read response body

	return resp, string(respBody)
}

func setupTest(t *testing.T) (*is.I, *httptest.Server, *objectimporter.ObjectImporterMock) {
	is := is.New(t)
	r := chi.NewRouter()
	ts := httptest.NewServer(r)

	app := &objectimporter.ObjectImporterMock{
		ImportFunc: func(ctx context.Context, input io.Reader, parentID string) (*importer.ImportResult, error) {
			return &importer.ImportResult{RunID: "r1", ParentID: parentID, TotalRows: 1, TotalCreated: 1}, nil
		},
		PreviewFunc: func(ctx context.Context, input io.Reader, parentID string) (*importer.Preview, error) {
			return &importer.Preview{ParentID: parentID, TotalRows: 1}, nil
		},
		CreateObjectFunc: func(ctx context.Context, parentID string, record blueprint.Fields) (*objectimporter.Object, error) {
			return &objectimporter.Object{ID: "o1", Name: "S", ClassID: "c3", ClassName: "Site", ParentID: parentID}, nil
		},
		ReadObjectFunc: func(ctx context.Context, objectID string) (*objectimporter.Object, error) {
			return &objectimporter.Object{ID: objectID, Name: "S", ClassID: "c3", ClassName: "Site"}, nil
		},
		UpdateObjectFunc: func(ctx context.Context, objectID string, record blueprint.Fields) (bool, error) {
			return true, nil
		},
		DeleteObjectFunc: func(ctx context.Context, objectID string) (bool, error) {
			return true, nil
		},
	}

	err := RegisterHandlers(context.Background(), r, strings.NewReader(opaModule), app)
	is.NoErr(err)

	return is, ts, app
}

const importCSV string = "Level;Class;Name\n1;Folder;A\n"

const opaModule string = `
package example.authz

default allow := false

allow = response {
    input.token == "letmein"
    response := {
    }
}
`
