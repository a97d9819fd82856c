package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AdminDirectory answers whether an email belongs to an admin.
type AdminDirectory interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// RequireAdmin returns middleware that allows access only to verified
// identities whose directory record carries the admin role. The role lives in
// the directory, not the token, so promotion and demotion take effect on the
// next request. An identity with no directory record is refused, not
// dereferenced.
func RequireAdmin(directory AdminDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			isAdmin, err := directory.IsAdmin(r.Context(), claims.Email)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, "admin lookup failed")
				return
			}
			if !isAdmin {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelf returns middleware that compares the verified email against the
// named chi URL parameter. A mismatch is refused even for admins; admin-wide
// listings have their own route.
func RequireSelf(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if claims.Email != chi.URLParam(r, param) {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
