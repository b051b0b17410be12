package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	UserIDContextKey = "user_id"
	RoleContextKey   = "user_role"
)

// Claims mirrors the token shape the hosted auth platform issues. This
// backend only validates; it never mints tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthRequired validates a bearer JWT signed with the shared tenant secret
// and stashes the subject and role for the role gate.
func AuthRequired(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return Unauthorized("Missing or malformed authorization header")
		}

		claims := &Claims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !parsed.Valid {
			return Unauthorized("Invalid or expired token")
		}

		c.Locals(UserIDContextKey, claims.Subject)
		c.Locals(RoleContextKey, claims.Role)

		return c.Next()
	}
}

// ServiceKeyRequired guards the machine-to-machine entry points (workflow
// triggers, cron hooks). An empty configured key disables the check, which
// matches local development.
func ServiceKeyRequired(serviceKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if serviceKey == "" {
			return c.Next()
		}

		token := bearerToken(c)
		if subtle.ConstantTimeCompare([]byte(token), []byte(serviceKey)) != 1 {
			return Unauthorized("Invalid service key")
		}

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func GetCurrentUserRole(c *fiber.Ctx) string {
	role, ok := c.Locals(RoleContextKey).(string)
	if !ok {
		return ""
	}
	return role
}
