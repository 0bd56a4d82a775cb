package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/utils"
)

// ProjectHandler handles the playground project endpoints.
type ProjectHandler struct {
	service service.ProjectService
	logger  zerolog.Logger
}

// NewProjectHandler constructs the handler.
func NewProjectHandler(service service.ProjectService, logger zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		logger:  logger.With().Str("component", "project_handler").Logger(),
	}
}

// Register wires the project routes.
func (h *ProjectHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/leaderboard", h.leaderboard)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Post("/:id/like", h.like)
	router.Post("/:id/view", h.view)
	router.Post("/:id/fork", h.fork)
}

func (h *ProjectHandler) list(c *fiber.Ctx) error {
	ownerID, err := parseQueryID(c, "userId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	logger := requestLogger(h.logger, c)
	projects, err := h.service.List(c.UserContext(), ownerID)
	if err != nil {
		return respondError(c, logger, err, "failed to list projects")
	}
	return utils.SendSuccess(c, "projects retrieved", projects)
}

func (h *ProjectHandler) leaderboard(c *fiber.Ctx) error {
	kind := strings.TrimSpace(c.Query("kind"))

	logger := requestLogger(h.logger, c)
	projects, err := h.service.Leaderboard(c.UserContext(), kind)
	if err != nil {
		return respondError(c, logger, err, "failed to build leaderboard")
	}
	return utils.SendSuccess(c, "leaderboard retrieved", projects)
}

func (h *ProjectHandler) get(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	logger := requestLogger(h.logger, c)
	project, err := h.service.Get(c.UserContext(), userIDFromContext(c), id)
	if err != nil {
		return respondError(c, logger, err, "failed to get project")
	}
	return utils.SendSuccess(c, "project retrieved", project)
}

func (h *ProjectHandler) create(c *fiber.Ctx) error {
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	project, err := h.service.Create(c.UserContext(), userIDFromContext(c), req)
	if err == nil {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "project created", project)
	}
	return respond(c, logger, err, "project created", project)
}

func (h *ProjectHandler) update(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}
	var req dto.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	project, err := h.service.Update(c.UserContext(), userIDFromContext(c), id, req)
	return respond(c, logger, err, "project updated", project)
}

func (h *ProjectHandler) delete(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	logger := requestLogger(h.logger, c)
	err = h.service.Delete(c.UserContext(), userIDFromContext(c), id)
	return respond(c, logger, err, "project deleted", nil)
}

func (h *ProjectHandler) like(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	logger := requestLogger(h.logger, c)
	project, err := h.service.Like(c.UserContext(), userIDFromContext(c), id)
	return respond(c, logger, err, "project liked", project)
}

func (h *ProjectHandler) view(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	logger := requestLogger(h.logger, c)
	project, err := h.service.View(c.UserContext(), id)
	return respond(c, logger, err, "view recorded", project)
}

func (h *ProjectHandler) fork(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	logger := requestLogger(h.logger, c)
	project, err := h.service.Fork(c.UserContext(), userIDFromContext(c), id)
	if err == nil {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "project forked", project)
	}
	return respond(c, logger, err, "project forked", project)
}
