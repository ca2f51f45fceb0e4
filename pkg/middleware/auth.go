package middleware

import (
	"net/http"
	"strings"

	"github.com/insidedopamineacademy-cmd/royaltransfersbcn-sub001/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuth guards the admin booking routes with a single operator token.
// The token itself is never stored; the config holds its bcrypt hash.
func AdminAuth(tokenHash string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenHash == "" {
				logger.Warn("Admin route hit without ADMIN_TOKEN_HASH configured")
				utils.ResponseUnauthorized(w, "Admin access not configured")
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(parts[1])); err != nil {
				logger.Warn("Invalid admin token", zap.String("ip", r.RemoteAddr))
				utils.ResponseUnauthorized(w, "Invalid admin token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
