package permission

import (
	"net/http"

	"github.com/protrack-app/protrack/internal/platform/httpx"
	"github.com/protrack-app/protrack/internal/shared"
)

// Require builds middleware that rejects requests lacking the given access.
// Denial renders a 403 problem response; it is never treated as a server error.
func Require(area Area, level Level) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := shared.IdentityFromContext(r.Context())
			if id == nil {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			if !Has(id, area, level) {
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
