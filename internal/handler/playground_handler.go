package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/utils"
)

// PlaygroundHandler handles the code editor autosave endpoints.
type PlaygroundHandler struct {
	service service.PlaygroundService
	logger  zerolog.Logger
}

// NewPlaygroundHandler constructs the handler.
func NewPlaygroundHandler(service service.PlaygroundService, logger zerolog.Logger) *PlaygroundHandler {
	return &PlaygroundHandler{
		service: service,
		logger:  logger.With().Str("component", "playground_handler").Logger(),
	}
}

// Register wires the playground routes.
func (h *PlaygroundHandler) Register(router fiber.Router) {
	router.Get("/snapshot", h.load)
	router.Put("/snapshot", h.save)
	router.Delete("/snapshot", h.clear)
}

func (h *PlaygroundHandler) load(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	snapshot, err := h.service.LoadSnapshot(c.UserContext())
	if err != nil {
		return respondError(c, logger, err, "failed to load snapshot")
	}
	return utils.SendSuccess(c, "snapshot retrieved", snapshot)
}

func (h *PlaygroundHandler) save(c *fiber.Ctx) error {
	var req dto.SnapshotRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	if err := h.service.SaveSnapshot(c.UserContext(), req); err != nil {
		return respondError(c, logger, err, "failed to save snapshot")
	}
	return utils.SendSuccess(c, "snapshot saved", nil)
}

func (h *PlaygroundHandler) clear(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	if err := h.service.ClearSnapshot(c.UserContext()); err != nil {
		return respondError(c, logger, err, "failed to clear snapshot")
	}
	return utils.SendSuccess(c, "snapshot cleared", nil)
}
