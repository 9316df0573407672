package api

import (
	"net/http"
	"strconv"

	"github.com/diwise/object-importer/internal/pkg/application/importer"
	"github.com/diwise/object-importer/internal/pkg/application/objectimporter"
	"github.com/diwise/object-importer/internal/pkg/presentation/api/auth"
	"github.com/diwise/object-importer/internal/pkg/presentation/api/problems"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/otel/attribute"
)

type importResponse struct {
	*importer.ImportResult
	Outcome importer.Outcome `json:"outcome"`
}

func NewImportHandler(app objectimporter.ObjectImporter, authenticator auth.Enticator) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "import-objects")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		parentID := r.URL.Query().Get("parent")
		if parentID == "" {
			problems.NewBadRequestData("the parent query parameter is required").WriteResponse(w)
			return
		}

		dryRun := false
		if dr := r.URL.Query().Get("dryRun"); dr != "" {
			dryRun, err = strconv.ParseBool(dr)
			if err != nil {
				problems.NewInvalidRequest("dryRun must be either true or false").WriteResponse(w)
				return
			}
		}

		span.SetAttributes(attribute.String("parent-id", parentID), attribute.Bool("dry-run", dryRun))

		err = authenticator.CheckAccess(ctx, r, parentID)
		if err != nil {
			problems.NewUnauthorizedRequest(err.Error()).WriteResponse(w)
			return
		}

		body := http.MaxBytesReader(w, r.Body, maxImportSize)
		defer body.Close()

		if dryRun {
			var preview *importer.Preview
			preview, err = app.Preview(ctx, body, parentID)
			if err != nil {
				problems.ReportError(w, err)
				return
			}

			writeJSON(w, http.StatusOK, preview)
			return
		}

		var result *importer.ImportResult
		result, err = app.Import(ctx, body, parentID)
		if err != nil {
			logging.GetFromContext(ctx).Info("import rejected", "parent_id", parentID, "err", err.Error())
			problems.ReportError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, importResponse{ImportResult: result, Outcome: result.Outcome()})
	})
}
