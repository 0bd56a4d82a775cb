package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupro-go-api/internal/middleware"
)

const testSecret = "middleware-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	chain := append([]fiber.Handler{middleware.JWTProtected(testSecret)}, handlers...)
	chain = append(chain, func(c *fiber.Ctx) error {
		id, _ := c.Locals("user_id").(int64)
		role, _ := c.Locals("user_role").(string)
		return c.JSON(fiber.Map{"id": id, "role": role})
	})
	app.Get("/secure", chain...)
	return app
}

func decodeBody(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func request(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJWTProtectedMissingHeader(t *testing.T) {
	app := newProtectedApp()

	resp := request(t, app, "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedWrongScheme(t *testing.T) {
	app := newProtectedApp()

	resp := request(t, app, "Basic dXNlcjpwYXNz")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedWrongSecret(t *testing.T) {
	app := newProtectedApp()
	token := signToken(t, "another-secret", jwt.MapClaims{"sub": float64(1)})

	resp := request(t, app, "Bearer "+token)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedExpiredToken(t *testing.T) {
	app := newProtectedApp()
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": float64(1),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	resp := request(t, app, "Bearer "+token)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedInvalidSubject(t *testing.T) {
	app := newProtectedApp()
	token := signToken(t, testSecret, jwt.MapClaims{"sub": float64(0)})

	resp := request(t, app, "Bearer "+token)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedPropagatesIdentity(t *testing.T) {
	app := newProtectedApp()
	token := signToken(t, testSecret, jwt.MapClaims{"sub": float64(7), "role": "Lecturer"})

	resp := request(t, app, "Bearer "+token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	}
	decodeBody(t, resp, &payload)
	require.Equal(t, int64(7), payload.ID)
	require.Equal(t, "lecturer", payload.Role)
}

func TestRequireRoleAllowsListedRoles(t *testing.T) {
	app := newProtectedApp(middleware.RequireRole("admin", "lecturer"))
	token := signToken(t, testSecret, jwt.MapClaims{"sub": float64(3), "role": "lecturer"})

	resp := request(t, app, "Bearer "+token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleBlocksOthers(t *testing.T) {
	app := newProtectedApp(middleware.RequireRole("admin"))
	token := signToken(t, testSecret, jwt.MapClaims{"sub": float64(2), "role": "student"})

	resp := request(t, app, "Bearer "+token)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
