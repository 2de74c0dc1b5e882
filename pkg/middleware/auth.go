package middleware

import (
	"net/http"
	"strings"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession resolves the bearer token to a live session and stores the
// user ID, the user's current role and the token in the request context.
func AuthSession(sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			if !utils.IsValidID(token) {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Debug("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			if !session.UserActive {
				utils.ResponseForbidden(w, "Account is deactivated")
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID, string(session.UserRole))
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through only when AuthSession stored one of roles
func RequireRole(logger *zap.Logger, roles ...entity.UserRole) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[string(role)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !allowed[role] {
				userID, _ := utils.GetUserIDFromContext(r.Context())
				logger.Warn("Role check failed",
					zap.String("user_id", userID.String()),
					zap.String("role", role),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
