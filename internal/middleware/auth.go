package middleware

import (
	"context"
	"net/http"
	"strings"

	"optic-backend/internal/auth"
	"optic-backend/internal/models"
	"optic-backend/internal/repositories"
)

type contextKey string

const EmployeeIDKey contextKey = "employee_id"
const EmailKey contextKey = "email"
const RoleKey contextKey = "role"

type AuthMiddleware struct {
	jwtManager   *auth.JWTManager
	employeeRepo *repositories.EmployeeRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, employeeRepo *repositories.EmployeeRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		employeeRepo: employeeRepo,
	}
}

// Authenticate is a middleware that validates JWT tokens
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
			return
		}

		token := parts[1]
		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		// Check database for current account status (for immediate permission updates)
		employee, err := m.employeeRepo.Get(r.Context(), claims.EmployeeID)
		if err != nil {
			http.Error(w, "Employee not found", http.StatusUnauthorized)
			return
		}

		if !employee.IsActive {
			http.Error(w, "Account suspended. Please contact the owner.", http.StatusForbidden)
			return
		}

		// Add employee info to context (database values, not token values)
		ctx := context.WithValue(r.Context(), EmployeeIDKey, employee.ID)
		ctx = context.WithValue(ctx, EmailKey, employee.Email)
		ctx = context.WithValue(ctx, RoleKey, models.NormalizeRole(string(employee.Role)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetEmployeeIDFromContext extracts the employee ID from request context
func GetEmployeeIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(EmployeeIDKey).(int)
	return id, ok
}

// GetRoleFromContext extracts the role from request context
func GetRoleFromContext(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(RoleKey).(models.Role)
	return role, ok
}

// RequireRole ensures the authenticated employee has one of the allowed
// roles. It wraps handlers already behind Authenticate.
func (m *AuthMiddleware) RequireRole(allowedRoles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}
			for _, allowed := range allowedRoles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "Insufficient permissions", http.StatusForbidden)
		})
	}
}
