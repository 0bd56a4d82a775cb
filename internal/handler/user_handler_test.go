package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/handler"
	"github.com/noah-isme/edupro-go-api/internal/models"
	"github.com/noah-isme/edupro-go-api/internal/store"
)

type mockUserService struct {
	users     []dto.UserResponse
	getErr    error
	startErr  error
	started   int64
	cancelled bool
	status    dto.ScanStatusResponse
}

func (m *mockUserService) List(context.Context) ([]dto.UserResponse, error) {
	return m.users, nil
}

func (m *mockUserService) Get(_ context.Context, id int64) (dto.UserResponse, error) {
	if m.getErr != nil {
		return dto.UserResponse{}, m.getErr
	}
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return dto.UserResponse{}, store.ErrNotFound
}

func (m *mockUserService) Create(context.Context, dto.UserRequest) (dto.UserResponse, error) {
	return dto.UserResponse{}, nil
}

func (m *mockUserService) Update(context.Context, int64, dto.UserRequest) (dto.UserResponse, error) {
	return dto.UserResponse{}, nil
}

func (m *mockUserService) Delete(context.Context, int64) error { return nil }

func (m *mockUserService) StartFaceRegistration(_ context.Context, id int64) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.started = id
	return nil
}

func (m *mockUserService) CancelFaceRegistration(context.Context) bool { return m.cancelled }

func (m *mockUserService) FaceRegistrationStatus(context.Context) dto.ScanStatusResponse {
	return m.status
}

func newUserApp(svc *mockUserService, userID int64, role string) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/users", func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("user_role", role)
		return c.Next()
	})
	passthrough := func(c *fiber.Ctx) error { return c.Next() }
	handler.NewUserHandler(svc, zerolog.New(io.Discard)).Register(group, passthrough)
	return app
}

func TestUserHandler_GetSuccess(t *testing.T) {
	svc := &mockUserService{users: []dto.UserResponse{{ID: 2, Username: "student", Role: models.RoleStudent}}}
	app := newUserApp(svc, 1, models.RoleAdmin)

	resp := performRequest(t, app, http.MethodGet, "/api/v1/users/2")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool             `json:"success"`
		Data    dto.UserResponse `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.True(t, payload.Success)
	require.Equal(t, "student", payload.Data.Username)
}

func TestUserHandler_GetNotFound(t *testing.T) {
	svc := &mockUserService{}
	app := newUserApp(svc, 1, models.RoleAdmin)

	resp := performRequest(t, app, http.MethodGet, "/api/v1/users/99")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUserHandler_GetInvalidID(t *testing.T) {
	app := newUserApp(&mockUserService{}, 1, models.RoleAdmin)

	resp := performRequest(t, app, http.MethodGet, "/api/v1/users/zero")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestUserHandler_FaceRegistrationSelfService(t *testing.T) {
	svc := &mockUserService{status: dto.ScanStatusResponse{State: "Capturing", Total: 30}}
	app := newUserApp(svc, 2, models.RoleStudent)

	resp := performRequest(t, app, http.MethodPost, "/api/v1/users/2/face")
	require.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	require.Equal(t, int64(2), svc.started)
}

func TestUserHandler_FaceRegistrationForOthersForbidden(t *testing.T) {
	svc := &mockUserService{}
	app := newUserApp(svc, 2, models.RoleStudent)

	resp := performRequest(t, app, http.MethodPost, "/api/v1/users/3/face")
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Zero(t, svc.started)
}

func TestUserHandler_CancelWithoutCapture(t *testing.T) {
	app := newUserApp(&mockUserService{cancelled: false}, 1, models.RoleAdmin)

	resp := performRequest(t, app, http.MethodDelete, "/api/v1/users/face/session")
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func performRequest(t *testing.T, app *fiber.App, method, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}
