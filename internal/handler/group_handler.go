package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/utils"
)

// GroupHandler handles study group and chat endpoints.
type GroupHandler struct {
	service service.GroupService
	logger  zerolog.Logger
}

// NewGroupHandler constructs the handler.
func NewGroupHandler(service service.GroupService, logger zerolog.Logger) *GroupHandler {
	return &GroupHandler{
		service: service,
		logger:  logger.With().Str("component", "group_handler").Logger(),
	}
}

// Register wires the group routes.
func (h *GroupHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Get("/:id/messages", h.messages)
	router.Post("/:id/messages", h.postMessage)
}

func (h *GroupHandler) list(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	groups, err := h.service.List(c.UserContext(), userIDFromContext(c))
	if err != nil {
		return respondError(c, logger, err, "failed to list groups")
	}
	return utils.SendSuccess(c, "groups retrieved", groups)
}

func (h *GroupHandler) get(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid group id")
	}

	logger := requestLogger(h.logger, c)
	group, err := h.service.Get(c.UserContext(), userIDFromContext(c), id)
	if err != nil {
		return respondError(c, logger, err, "failed to get group")
	}
	return utils.SendSuccess(c, "group retrieved", group)
}

func (h *GroupHandler) create(c *fiber.Ctx) error {
	var req dto.GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	group, err := h.service.Create(c.UserContext(), userIDFromContext(c), req)
	if err == nil {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "group created", group)
	}
	return respond(c, logger, err, "group created", group)
}

func (h *GroupHandler) update(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid group id")
	}
	var req dto.GroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	group, err := h.service.Update(c.UserContext(), userIDFromContext(c), id, req)
	return respond(c, logger, err, "group updated", group)
}

func (h *GroupHandler) messages(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid group id")
	}

	logger := requestLogger(h.logger, c)
	messages, err := h.service.Messages(c.UserContext(), userIDFromContext(c), id)
	if err != nil {
		return respondError(c, logger, err, "failed to list messages")
	}
	return utils.SendSuccess(c, "messages retrieved", messages)
}

func (h *GroupHandler) postMessage(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid group id")
	}
	var req dto.MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	message, err := h.service.PostMessage(c.UserContext(), userIDFromContext(c), id, req)
	if err == nil {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "message posted", message)
	}
	return respond(c, logger, err, "message posted", message)
}
