package http

import (
	"log/slog"
	"net/http"

	"github.com/swaggo/swag"

	"github.com/aussiebroadwan/conduit/pkg/slogx"
)

// OpenAPIHandler serves the raw OpenAPI document registered by the docs
// package, the same document the Swagger UI loads from /api-docs/doc.json.
func OpenAPIHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			slogx.FromContext(r.Context()).Error("failed to read api docs", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(doc))
	}
}
