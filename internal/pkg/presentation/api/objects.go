package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/diwise/object-importer/internal/pkg/application/blueprint"
	"github.com/diwise/object-importer/internal/pkg/application/objectimporter"
	"github.com/diwise/object-importer/internal/pkg/presentation/api/auth"
	"github.com/diwise/object-importer/internal/pkg/presentation/api/problems"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
)

func NewCreateObjectHandler(app objectimporter.ObjectImporter, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "create-object")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		parentID := r.URL.Query().Get("parent")
		if parentID == "" {
			problems.NewBadRequestData("the parent query parameter is required").WriteResponse(w)
			return
		}

		err = authenticator.CheckAccess(ctx, r, parentID)
		if err != nil {
			problems.NewUnauthorizedRequest(err.Error()).WriteResponse(w)
			return
		}

		record, err := decodeRecord(r.Body)
		if err != nil {
			problems.NewInvalidRequest(fmt.Sprintf("unable to decode request payload: %s", err.Error())).WriteResponse(w)
			return
		}

		obj, err := app.CreateObject(ctx, parentID, record)
		if err != nil {
			problems.ReportError(w, err)
			return
		}

		span.SetAttributes(attribute.String("object-id", obj.ID))

		w.Header().Add("Location", "/api/v0/objects/"+url.PathEscape(obj.ID))
		writeJSON(w, http.StatusCreated, obj)
	})
}

func NewRetrieveObjectHandler(app objectimporter.ObjectImporter, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "retrieve-object")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		objectID, _ := url.PathUnescape(chi.URLParam(r, "objectId"))

		err = authenticator.CheckAccess(ctx, r, "")
		if err != nil {
			problems.NewUnauthorizedRequest(err.Error()).WriteResponse(w)
			return
		}

		obj, err := app.ReadObject(ctx, objectID)
		if err != nil {
			problems.ReportError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, obj)
	})
}

func NewUpdateObjectHandler(app objectimporter.ObjectImporter, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "update-object")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		objectID, _ := url.PathUnescape(chi.URLParam(r, "objectId"))

		err = authenticator.CheckAccess(ctx, r, "")
		if err != nil {
			problems.NewUnauthorizedRequest(err.Error()).WriteResponse(w)
			return
		}

		record, err := decodeRecord(r.Body)
		if err != nil {
			problems.NewInvalidRequest(fmt.Sprintf("unable to decode request payload: %s", err.Error())).WriteResponse(w)
			return
		}

		_, err = app.UpdateObject(ctx, objectID, record)
		if err != nil {
			problems.ReportError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

func NewDeleteObjectHandler(app objectimporter.ObjectImporter, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "delete-object")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		objectID, _ := url.PathUnescape(chi.URLParam(r, "objectId"))

		err = authenticator.CheckAccess(ctx, r, "")
		if err != nil {
			problems.NewUnauthorizedRequest(err.Error()).WriteResponse(w)
			return
		}

		_, err = app.DeleteObject(ctx, objectID)
		if err != nil {
			problems.ReportError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}

// decodeRecord reads a json object into record fields. Numbers are kept as
// json.Number and RFC 3339 strings are turned into timestamps.
func decodeRecord(body io.Reader) (blueprint.Fields, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()

	record := blueprint.Fields{}
	err = d.Decode(&record)
	if err != nil {
		return nil, err
	}

	for k, v := range record {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			record[k] = t.UTC()
		}
	}

	return record, nil
}
