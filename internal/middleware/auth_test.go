package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, role string, expiresAt time.Time) string {
	t.Helper()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func authTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/me", AuthRequired(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": GetCurrentUserRole(c)})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	t.Run("accepts a valid token and exposes the role", func(t *testing.T) {
		app := authTestApp()

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "admin", time.Now().Add(time.Hour)))

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "admin", body["role"])
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		app := authTestApp()

		resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects a token signed with the wrong secret", func(t *testing.T) {
		app := authTestApp()

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "admin", time.Now().Add(time.Hour)))

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		app := authTestApp()

		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "admin", time.Now().Add(-time.Hour)))

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestServiceKeyRequired(t *testing.T) {
	newApp := func(configuredKey string) *fiber.App {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
		app.Post("/hook", ServiceKeyRequired(configuredKey), func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		})
		return app
	}

	t.Run("accepts the configured key", func(t *testing.T) {
		app := newApp("svc-key")

		req := httptest.NewRequest("POST", "/hook", nil)
		req.Header.Set("Authorization", "Bearer svc-key")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("rejects a wrong key", func(t *testing.T) {
		app := newApp("svc-key")

		req := httptest.NewRequest("POST", "/hook", nil)
		req.Header.Set("Authorization", "Bearer wrong")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("empty configured key disables the check", func(t *testing.T) {
		app := newApp("")

		resp, err := app.Test(httptest.NewRequest("POST", "/hook", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
