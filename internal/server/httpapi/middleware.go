package httpapi

import (
	"context"
	"net/http"
	"strings"

	"todokeeper/internal/common"
	"todokeeper/internal/server/auth"
	"todokeeper/internal/server/models"
)

type ctxKey int

const userCtxKey ctxKey = iota

// bearerToken extracts the credential from the Authorization header. The
// second return value is false when the header is absent or malformed.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
	return token, token != ""
}

// authMiddleware verifies the bearer token, rejects revoked or invalid
// credentials, and stores the authenticated user in the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Not authenticated")
			return
		}

		revoked, err := s.denylist.IsRevoked(ctx, token)
		if err != nil {
			s.log.Error(ctx, "denylist lookup failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
			return
		}
		if revoked {
			writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		userID, _, err := auth.ParseToken(token, s.secret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			// token subject no longer exists, treat like a bad credential
			writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, userCtxKey, user)))
	})
}

// currentUser returns the user stored by authMiddleware.
func currentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userCtxKey).(*models.User)
	return user
}
