package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/models"
	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/utils"
)

// UserHandler handles account management and face enrollment endpoints.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register wires the account routes. Mutations are admin-only; the face
// registration routes allow self-service.
func (h *UserHandler) Register(router fiber.Router, adminOnly fiber.Handler) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", adminOnly, h.create)
	router.Put("/:id", adminOnly, h.update)
	router.Delete("/:id", adminOnly, h.delete)

	router.Post("/:id/face", h.startFaceRegistration)
	router.Delete("/face/session", h.cancelFaceRegistration)
	router.Get("/face/session", h.faceRegistrationStatus)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, logger, err, "failed to list users")
	}
	return utils.SendSuccess(c, "users retrieved", users)
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	logger := requestLogger(h.logger, c)
	user, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, logger, err, "failed to get user")
	}
	return utils.SendSuccess(c, "user retrieved", user)
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	user, err := h.service.Create(c.UserContext(), req)
	if err == nil {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", user)
	}
	return respond(c, logger, err, "user created", user)
}

func (h *UserHandler) update(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	user, err := h.service.Update(c.UserContext(), id, req)
	return respond(c, logger, err, "user updated", user)
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	logger := requestLogger(h.logger, c)
	err = h.service.Delete(c.UserContext(), id)
	return respond(c, logger, err, "user deleted", nil)
}

// startFaceRegistration begins an enrollment capture. Non-admins may only
// enroll their own face.
func (h *UserHandler) startFaceRegistration(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}
	if userRoleFromContext(c) != models.RoleAdmin && userIDFromContext(c) != id {
		return utils.SendError(c, fiber.StatusForbidden, "not allowed")
	}

	logger := requestLogger(h.logger, c)
	if err := h.service.StartFaceRegistration(c.UserContext(), id); err != nil {
		return respondError(c, logger, err, "failed to start face registration")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusAccepted, "face registration started", h.service.FaceRegistrationStatus(c.UserContext()))
}

func (h *UserHandler) cancelFaceRegistration(c *fiber.Ctx) error {
	cancelled := h.service.CancelFaceRegistration(c.UserContext())
	if !cancelled {
		return utils.SendError(c, fiber.StatusConflict, "no capture in progress")
	}
	return utils.SendSuccess(c, "face registration cancelled", nil)
}

func (h *UserHandler) faceRegistrationStatus(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "capture status", h.service.FaceRegistrationStatus(c.UserContext()))
}
