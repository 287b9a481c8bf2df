package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"tally/internal/auth"
	"tally/internal/httputil"
)

// openPaths are reachable without a credential.
var openPaths = map[string]bool{
	"/health":    true,
	"/authorize": true, // carries its credential in the payload
}

// Auth extracts the caller identity from the Authorization header and places
// it in the request context for the management endpoints. The authorize
// endpoint itself is exempt: its credential arrives in the request body.
func Auth(extractor auth.IdentityExtractor, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if openPaths[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			userID, err := extractor.ExtractIdentity(header)
			if err != nil {
				logger.Debug("rejecting request with unusable credential", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid credential")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}
