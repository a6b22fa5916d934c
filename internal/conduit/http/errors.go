package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/conduit/internal/conduit/service"
	"github.com/aussiebroadwan/conduit/pkg/conduitsdk"
	"github.com/aussiebroadwan/conduit/pkg/httpx"
	"github.com/aussiebroadwan/conduit/pkg/slogx"
)

// writeServiceError maps service errors onto conduit error responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	if ve, ok := service.AsValidationError(err); ok {
		conduitsdk.NewValidationError(ve.Fields).WriteError(w)
		return
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		conduitsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrUserNotFound):
		// The token was valid but its user is gone.
		httpx.WriteUnauthorized(w)
	case errors.Is(err, service.ErrProfileNotFound):
		conduitsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Warn("request abandoned", slog.Any("error", err))
		conduitsdk.ErrServiceUnavailable.WriteError(w)
	default:
		log.Error("request failed", slog.Any("error", err))
		conduitsdk.ErrServerError.WriteError(w)
	}
}

// NotFoundHandler answers every unrouted path.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conduitsdk.ErrNotFound.WriteError(w)
	}
}
