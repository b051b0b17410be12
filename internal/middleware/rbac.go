package middleware

import (
	"github.com/gofiber/fiber/v2"

	"church-admin-be/internal/domain"
)

// RequireRole admits the named role and anything above it. Admins can do
// everything; pastors can do staff work.
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetCurrentUserRole(c)
		if role == "" {
			return Unauthorized("User not found")
		}

		if !roleSatisfies(role, requiredRole) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}

func roleSatisfies(role, requiredRole string) bool {
	switch requiredRole {
	case domain.RoleAdmin:
		return role == domain.RoleAdmin
	case domain.RolePastor:
		return role == domain.RolePastor || role == domain.RoleAdmin
	case domain.RoleStaff:
		return role == domain.RoleStaff || role == domain.RolePastor || role == domain.RoleAdmin
	default:
		return false
	}
}
