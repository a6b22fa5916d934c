package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/conduit/pkg/jwtx"
	"github.com/aussiebroadwan/conduit/pkg/slogx"
)

// ErrNoToken means the request carried no Authorization header at all.
var ErrNoToken = errors.New("httpx: no bearer token")

// ReasonMissing labels requests rejected for having no token.
const ReasonMissing = "missing"

// Authenticator turns bearer tokens into an authenticated request context.
//
// Every failure is logged and reported to OnFailure with its specific reason
// (missing, malformed, invalid_signature, expired) while the client always
// gets the same 401 response.
type Authenticator struct {
	Verifier  jwtx.Verifier
	OnFailure func(reason string)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(v jwtx.Verifier) Middleware {
	return (&Authenticator{Verifier: v}).Required()
}

// OptionalAuth lets requests without a token through anonymously, but still
// rejects a token that is present and invalid.
func OptionalAuth(v jwtx.Verifier) Middleware {
	return (&Authenticator{Verifier: v}).Optional()
}

func (a *Authenticator) Required() Middleware { return a.middleware(true) }
func (a *Authenticator) Optional() Middleware { return a.middleware(false) }

func (a *Authenticator) middleware(required bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, err := BearerToken(r)
			if errors.Is(err, ErrNoToken) {
				if !required {
					next.ServeHTTP(w, r)
					return
				}
				a.reject(w, r, ReasonMissing, err)
				return
			}
			if err != nil {
				a.reject(w, r, jwtx.Reason(err), err)
				return
			}

			claims, err := a.Verifier.Verify(raw)
			if err != nil {
				a.reject(w, r, jwtx.Reason(err), err)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.WithUserID(ctx, claims.Subject)
			log.Debug("request authenticated", "user_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (a *Authenticator) reject(w http.ResponseWriter, r *http.Request, reason string, err error) {
	slogx.FromContext(r.Context()).Warn("authentication failed", "reason", reason, "err", err)
	if a.OnFailure != nil {
		a.OnFailure(reason)
	}
	WriteUnauthorized(w)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. A missing header is ErrNoToken; any other shape is
// jwtx.ErrMalformed.
func BearerToken(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return "", ErrNoToken
	}

	scheme, token, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", jwtx.ErrMalformed
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", jwtx.ErrMalformed
	}
	return token, nil
}

// WriteUnauthorized writes the single 401 body every auth failure shares.
// The WWW-Authenticate header follows RFC 6750.
func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteJSON(w, http.StatusUnauthorized, ErrorBody{
		Errors: map[string]string{"message": "unauthorized"},
	})
}
