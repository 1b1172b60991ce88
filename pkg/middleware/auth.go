package middleware

import (
	"net/http"
	"strings"

	"meeting-scheduler/internal/data/repository"
	"meeting-scheduler/pkg/utils"

	"go.uber.org/zap"
)

// AuthSession verifies the bearer JWT and checks that its session is still live.
func AuthSession(secret string, sessionRepo repository.SessionRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			userID, sessionToken, err := utils.ParseAccessToken(secret, parts[1])
			if err != nil {
				logger.Warn("Rejected access token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// Session harus masih aktif (belum logout / revoked)
			session, err := sessionRepo.FindValidSession(r.Context(), sessionToken)
			if err != nil {
				logger.Error("Failed to validate session",
					zap.String("user_id", userID.String()),
					zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil || session.UserID != userID {
				logger.Warn("Invalid or expired session", zap.String("user_id", userID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), session.UserID)
			ctx = utils.SetSessionContext(ctx, sessionToken)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
