package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/registrar/pkg/slogx"
)

// Authenticator resolves the caller of a request. It returns ok=false for
// anonymous requests; err is reserved for infrastructure failures.
type Authenticator interface {
	Authenticate(r *http.Request) (p Principal, ok bool, err error)
}

// AuthnMiddleware attaches the principal to the request context when the
// request carries a valid session. Anonymous requests pass through untouched.
func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			p, ok, err := a.Authenticate(r)
			if err != nil {
				slogx.FromContext(ctx).Error("session lookup failed", "err", err)
				WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
				return
			}
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = slogx.With(ctx, "user_id", p.UserID, "role", p.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
}
