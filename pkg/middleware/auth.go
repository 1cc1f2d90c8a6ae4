package middleware

import (
	"net/http"
	"strings"

	"github.com/gras5/api-yamdb/internal/access"
	"github.com/gras5/api-yamdb/internal/data/repository"
	"github.com/gras5/api-yamdb/pkg/token"
	"github.com/gras5/api-yamdb/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authenticate resolves an optional bearer token into a caller on the request
// context. Requests without a token pass through as anonymous; whether that is
// enough is decided per route by RequirePolicy or inside the service.
func Authenticate(issuer *token.Issuer, accounts repository.AccountRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := issuer.Verify(parts[1])
			if err != nil {
				logger.Warn("Token verification failed", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			accountID, err := uuid.Parse(claims.Subject)
			if err != nil {
				logger.Warn("Malformed token subject", zap.String("subject", claims.Subject))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			account, err := accounts.FindByID(r.Context(), accountID)
			if err != nil {
				logger.Error("Failed to load token account",
					zap.Error(err),
					zap.String("account_id", accountID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			// A token for a deleted account is just an invalid token.
			if account == nil {
				logger.Warn("Token account no longer exists",
					zap.String("account_id", accountID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			caller := access.Caller{
				Authenticated: true,
				ID:            account.ID,
				Username:      account.Username,
				Role:          account.Role,
				Superuser:     account.IsSuperuser,
			}

			next.ServeHTTP(w, r.WithContext(access.WithCaller(r.Context(), caller)))
		})
	}
}

// RequirePolicy enforces a collection-level access policy. Object-level checks
// on reviews and comments stay in the services, where the owner is known.
func RequirePolicy(policy access.Policy, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := access.CallerFrom(r.Context())

			if policy.AllowCollection(caller, r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			if !caller.Authenticated {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			logger.Warn("Access denied",
				zap.String("policy", policy.String()),
				zap.String("username", caller.Username),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path))
			utils.ResponseForbidden(w, "You do not have permission to perform this action")
		})
	}
}
