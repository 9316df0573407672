package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/diwise/object-importer/internal/pkg/application/objectimporter"
	"github.com/diwise/object-importer/internal/pkg/presentation/api/auth"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("object-importer/api")

const maxImportSize int64 = 32 << 20

const xlsxContentType string = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func RegisterHandlers(ctx context.Context, r chi.Router, policies io.Reader, app objectimporter.ObjectImporter) error {

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return fmt.Errorf("failed to create api authenticator: %w", err)
	}

	r.Route("/api/v0", func(r chi.Router) {
		r.Use(Logger(logging.GetFromContext(ctx)))

		r.With(
			RequiredContentTypes([]string{"text/csv", "text/plain", "application/octet-stream", xlsxContentType}),
		).Post("/imports", NewImportHandler(app, authenticator))

		r.Route("/objects", func(r chi.Router) {
			r.Use(RequiredContentTypes([]string{"application/json"}))

			r.Post("/", NewCreateObjectHandler(app, authenticator))

			r.Route("/{objectId}", func(r chi.Router) {
				r.Get("/", NewRetrieveObjectHandler(app, authenticator))
				r.Patch("/", NewUpdateObjectHandler(app, authenticator))
				r.Delete("/", NewDeleteObjectHandler(app, authenticator))
			})
		})
	})

	return nil
}

func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(
				trace.SpanFromContext(ctx),
				logger,
				ctx)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequiredContentTypes(validTypes []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType := r.Header.Get("Content-Type")
			isValidContentType := true

			if len(contentType) > 0 {
				isValidContentType = false

				for _, t := range validTypes {
					if strings.HasPrefix(contentType, t) {
						isValidContentType = true
						break
					}
				}
			}

			if isValidContentType {
				next.ServeHTTP(w, r)
			} else {
				http.Error(w, "unsupported media type", http.StatusUnsupportedMediaType)
			}
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(b)
}
