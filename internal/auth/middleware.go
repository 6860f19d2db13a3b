package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/farihasabaya/storefront/pkg/logger"
	"github.com/farihasabaya/storefront/pkg/web"
)

type contextKey string

const subjectContextKey = contextKey("adminSubject")

// RequireAdmin verifies the bearer token and lets the request through only for the admin role.
// A missing or invalid token is 401, a valid token without the role is 403.
func RequireAdmin(verifier Verifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				web.RespondError(w, log, http.StatusUnauthorized, "Authorization header is required")
				return
			}
			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				web.RespondError(w, log, http.StatusUnauthorized, "Bearer token is required")
				return
			}

			token, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				log.WarnContext(r.Context(), "Rejected admin token", "error", err)
				web.RespondError(w, log, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			subject, ok := token.Subject()
			if !ok || subject == "" {
				web.RespondError(w, log, http.StatusUnauthorized, "Token has no subject")
				return
			}
			if RoleOf(token) != AdminRole {
				log.WarnContext(r.Context(), "Token lacks admin role", "subject", subject)
				web.RespondError(w, log, http.StatusForbidden, "Admin access required")
				return
			}

			ctx := context.WithValue(r.Context(), subjectContextKey, subject)
			ctx = logger.AppendCtx(ctx, slog.String("admin", subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the authenticated admin subject, or "" outside admin routes.
func SubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(subjectContextKey).(string)
	return subject
}
