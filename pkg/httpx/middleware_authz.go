package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/registrar/pkg/slogx"
)

// RequireCapability rejects anonymous callers with 401 and callers lacking
// any of the listed capabilities with 403. With no capabilities listed it
// only requires a session.
func RequireCapability(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeUnauthorized(w)
				return
			}

			for _, c := range required {
				if !p.Can(c) {
					slogx.FromContext(r.Context()).Warn("capability denied",
						"capability", c,
						"endpoint", r.URL.Path,
					)
					WriteError(w, http.StatusForbidden, "forbidden", "Insufficient permissions")
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
