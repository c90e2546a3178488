package middleware

import (
	"context"
	"net/http"
	"strings"

	"pos-backend/internal/auth"
	"pos-backend/internal/repositories"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const EmailKey contextKey = "email"
const RoleKey contextKey = "role"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	userRepo   *repositories.UserRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		userRepo:   userRepo,
	}
}

// authenticate validates the bearer token and returns the user's
// current identity. It reads the user back from the database so role
// changes and deactivations take effect immediately, not at token
// expiry.
func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request) (context.Context, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		http.Error(w, "Authorization header required", http.StatusUnauthorized)
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
		return nil, false
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return nil, false
	}

	user, err := m.userRepo.Get(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return nil, false
	}
	if !user.IsActive {
		http.Error(w, "Account suspended. Please contact administrator.", http.StatusForbidden)
		return nil, false
	}

	ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
	ctx = context.WithValue(ctx, EmailKey, user.Email)
	ctx = context.WithValue(ctx, RoleKey, user.Role)
	return ctx, true
}

// Authenticate is a middleware that validates JWT tokens
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole is a middleware that ensures the user has one of the allowed roles
func (m *AuthMiddleware) RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, ok := m.authenticate(w, r)
			if !ok {
				return
			}

			role, _ := ctx.Value(RoleKey).(string)
			for _, allowed := range allowedRoles {
				if role == allowed {
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}
			http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
		})
	}
}

// GetUserIDFromContext extracts user ID from request context
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetEmailFromContext extracts email from request context
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}

// GetRoleFromContext extracts role from request context
func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}
