package httpx

import (
	"context"

	"github.com/aussiebroadwan/conduit/pkg/jwtx"
)

type ctxKey string

const CtxKeyUserID ctxKey = "user_id"

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, c.Subject)
}

// UserIDFromContext returns the identifier bound by the auth middleware.
// ok is false for anonymous requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}
