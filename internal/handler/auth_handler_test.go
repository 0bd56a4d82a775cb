package handler_test

import (
	"bytes"
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
	"github.com/noah-isme/edupro-go-api/internal/store"
)

type mockAuthService struct {
	lastLogin dto.LoginRequest
	response  dto.LoginResponse
	loginErr  error
	loggedOut bool
}

func (m *mockAuthService) Login(_ context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	m.lastLogin = req
	if m.loginErr != nil {
		return dto.LoginResponse{}, m.loginErr
	}
	return m.response, nil
}

func (m *mockAuthService) Logout(context.Context) error {
	m.loggedOut = true
	return nil
}

func (m *mockAuthService) TouchActivity(context.Context) error { return nil }

func (m *mockAuthService) ExpireIfIdle(context.Context) (bool, error) { return false, nil }

func newAuthApp(svc *mockAuthService) *fiber.App {
	app := fiber.New()
	h := handler.NewAuthHandler(svc, zerolog.New(io.Discard))
	group := app.Group("/api/v1/auth")
	h.Register(group)
	h.RegisterProtected(group)
	return app
}

func TestAuthHandler_LoginSuccess(t *testing.T) {
	svc := &mockAuthService{response: dto.LoginResponse{
		Token: "jwt-token",
		User:  dto.UserResponse{ID: 2, Username: "student"},
	}}
	app := newAuthApp(svc)

	body, err := json.Marshal(dto.LoginRequest{Username: "student", Password: "student123"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.True(t, payload.Success)
	require.Equal(t, "jwt-token", payload.Data.Token)
	require.Equal(t, "student", svc.lastLogin.Username)
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	svc := &mockAuthService{loginErr: store.ErrInvalidCredentials}
	app := newAuthApp(svc)

	body, err := json.Marshal(dto.LoginRequest{Username: "student", Password: "wrong"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_LoginMalformedBody(t *testing.T) {
	app := newAuthApp(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{broken")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &mockAuthService{}
	app := newAuthApp(svc)

	resp := performRequest(t, app, http.MethodPost, "/api/v1/auth/logout")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, svc.loggedOut)
}
