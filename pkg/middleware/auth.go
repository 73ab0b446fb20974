package middleware

import (
	"net/http"
	"strings"

	"movie-portal/internal/data/entity"
	"movie-portal/internal/data/repository"
	"movie-portal/pkg/utils"

	"go.uber.org/zap"
)

// resolvePrincipal validates the bearer token and loads the owning user.
// Returns nil without error when no credentials are presented.
func resolvePrincipal(r *http.Request, sessionRepo repository.SessionRepository, userRepo repository.UserRepository) (*entity.User, string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "", nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "", nil
	}
	token := parts[1]

	session, err := sessionRepo.FindValidSession(r.Context(), token)
	if err != nil {
		return nil, "", err
	}
	if session == nil {
		return nil, "", nil
	}

	user, err := userRepo.FindByID(r.Context(), session.UserID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// AuthSession requires a valid session token and stows the principal's
// username and role in the request context.
func AuthSession(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, token, err := resolvePrincipal(r, sessionRepo, userRepo)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil {
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.Username, string(user.Role))
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the principal when credentials are present but lets
// anonymous requests through untouched. Used on public pages that show the
// viewer's own review when logged in.
func OptionalAuth(sessionRepo repository.SessionRepository, userRepo repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, token, err := resolvePrincipal(r, sessionRepo, userRepo)
			if err != nil {
				logger.Warn("Session lookup failed, continuing as anonymous", zap.Error(err))
			}

			if user != nil {
				ctx := utils.SetUserContext(r.Context(), user.Username, string(user.Role))
				ctx = utils.SetTokenContext(ctx, token)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Admin requires that AuthSession already resolved an admin principal.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if role != string(entity.RoleAdmin) {
				username, _ := utils.GetUsernameFromContext(r.Context())
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("username", username),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
