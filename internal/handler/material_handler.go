package handler

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/utils"
)

// MaterialHandler handles learning material endpoints.
type MaterialHandler struct {
	service service.MaterialService
	logger  zerolog.Logger
}

// NewMaterialHandler constructs the handler.
func NewMaterialHandler(service service.MaterialService, logger zerolog.Logger) *MaterialHandler {
	return &MaterialHandler{
		service: service,
		logger:  logger.With().Str("component", "material_handler").Logger(),
	}
}

// Register wires the material routes. Mutations require staff roles.
func (h *MaterialHandler) Register(router fiber.Router, staffOnly fiber.Handler) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", staffOnly, h.create)
	router.Post("/upload", staffOnly, h.upload)
	router.Put("/:id", staffOnly, h.update)
	router.Delete("/:id", staffOnly, h.delete)
	router.Post("/:id/download", h.download)
}

func (h *MaterialHandler) list(c *fiber.Ctx) error {
	courseID, err := parseQueryID(c, "courseId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	logger := requestLogger(h.logger, c)
	materials, err := h.service.List(c.UserContext(), courseID)
	if err != nil {
		return respondError(c, logger, err, "failed to list materials")
	}
	return utils.SendSuccess(c, "materials retrieved", materials)
}

func (h *MaterialHandler) get(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid material id")
	}

	logger := requestLogger(h.logger, c)
	material, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, logger, err, "failed to get material")
	}
	return utils.SendSuccess(c, "material retrieved", material)
}

func (h *MaterialHandler) create(c *fiber.Ctx) error {
	var req dto.MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	material, err := h.service.Create(c.UserContext(), userIDFromContext(c), req)
	if err == nil {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "material created", material)
	}
	return respond(c, logger, err, "material created", material)
}

// upload accepts a multipart file and stores it as an inline material. The
// material type is detected from the file content, not the filename.
func (h *MaterialHandler) upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = fileHeader.Filename
	}
	courseID, err := parseQueryID(c, "courseId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "failed to read file")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "failed to read file")
	}

	logger := requestLogger(h.logger, c)
	material, err := h.service.Upload(c.UserContext(), userIDFromContext(c), title, courseID, data)
	if err == nil {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "material uploaded", material)
	}
	return respond(c, logger, err, "material uploaded", material)
}

func (h *MaterialHandler) update(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid material id")
	}
	var req dto.MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	material, err := h.service.Update(c.UserContext(), id, req)
	return respond(c, logger, err, "material updated", material)
}

func (h *MaterialHandler) delete(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid material id")
	}

	logger := requestLogger(h.logger, c)
	err = h.service.Delete(c.UserContext(), id)
	return respond(c, logger, err, "material deleted", nil)
}

func (h *MaterialHandler) download(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid material id")
	}

	logger := requestLogger(h.logger, c)
	material, err := h.service.Download(c.UserContext(), id)
	return respond(c, logger, err, "download recorded", material)
}
