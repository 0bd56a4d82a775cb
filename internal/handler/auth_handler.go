package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/utils"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the public auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
}

// RegisterProtected wires routes that require an authenticated session.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Post("/logout", h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	result, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, logger, err, "login failed")
	}
	return utils.SendSuccess(c, "login successful", result)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	err := h.service.Logout(c.UserContext())
	return respond(c, logger, err, "logged out", nil)
}
