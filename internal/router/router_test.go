package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupro-go-api/internal/biometric"
	"github.com/noah-isme/edupro-go-api/internal/config"
	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/handler"
	"github.com/noah-isme/edupro-go-api/internal/middleware"
	"github.com/noah-isme/edupro-go-api/internal/router"
	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/storage"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

const testSecret = "router-test-secret"

// newTestApp wires the whole HTTP stack against a throwaway Redis instance.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.New(io.Discard)
	backend := storage.NewRedis(client, "edupro")
	documentStore, err := store.Open(context.Background(), backend, logger, store.Options{SeedDemoData: true})
	require.NoError(t, err)

	cfg := config.Config{
		AppName:        "EduPro Portal API",
		AppEnv:         "test",
		JWTSecret:      testSecret,
		SessionTimeout: 30 * time.Minute,
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	enrollScanner := biometric.NewScanner(logger)
	checkinScanner := biometric.NewScanner(logger)

	authService := service.NewAuthService(documentStore, validate, cfg.JWTSecret, cfg.SessionTimeout, logger)
	userService := service.NewUserService(documentStore, enrollScanner, validate, 30, time.Millisecond, logger)
	courseService := service.NewCourseService(documentStore, validate, logger)
	materialService := service.NewMaterialService(documentStore, validate, logger)
	attendanceService := service.NewAttendanceService(documentStore, checkinScanner, time.Millisecond, 0.92, logger)
	projectService := service.NewProjectService(documentStore, validate, logger)
	groupService := service.NewGroupService(documentStore, validate, logger)
	adminService := service.NewAdminService(documentStore, logger)
	exportService := service.NewExportService(documentStore, logger)
	playgroundService := service.NewPlaygroundService(backend, logger)

	app := fiber.New()
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		UserHandler:       handler.NewUserHandler(userService, logger),
		CourseHandler:     handler.NewCourseHandler(courseService, logger),
		MaterialHandler:   handler.NewMaterialHandler(materialService, logger),
		AttendanceHandler: handler.NewAttendanceHandler(attendanceService, logger),
		ProjectHandler:    handler.NewProjectHandler(projectService, logger),
		GroupHandler:      handler.NewGroupHandler(groupService, logger),
		AdminHandler:      handler.NewAdminHandler(adminService, exportService, logger),
		PlaygroundHandler: handler.NewPlaygroundHandler(playgroundService, logger),

		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
		ActivityMiddleware: middleware.ActivityTracker(authService, logger),
	})
	return app
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()

	body, err := json.Marshal(dto.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data dto.LoginResponse `json:"data"`
	}
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.Data.Token)
	return payload.Data.Token
}

func authedRequest(t *testing.T, app *fiber.App, method, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := authedRequest(t, app, http.MethodGet, "/api/v1/health", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "EduPro Portal API", resp.Header.Get("X-Application"))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	resp := authedRequest(t, app, http.MethodGet, "/api/v1/users", "")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminCanListUsers(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin12345")

	resp := authedRequest(t, app, http.MethodGet, "/api/v1/users", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data []dto.UserResponse `json:"data"`
	}
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload.Data, 3)
}

func TestStudentCannotCreateUsers(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "student", "student123")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestStudentCannotReachAdminRoutes(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "student", "student123")

	resp := authedRequest(t, app, http.MethodGet, "/api/v1/admin/dashboard", token)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminDashboard(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin12345")

	resp := authedRequest(t, app, http.MethodGet, "/api/v1/admin/dashboard", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Data dto.DashboardResponse `json:"data"`
	}
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, 3, payload.Data.TotalUsers)
}

func TestTamperedTokenRejected(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin", "admin12345")

	resp := authedRequest(t, app, http.MethodGet, "/api/v1/users", token+"x")
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMetricsEndpointIsExposed(t *testing.T) {
	app := newTestApp(t)

	resp := authedRequest(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
