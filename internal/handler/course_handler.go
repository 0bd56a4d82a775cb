package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/dto"
	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/utils"
)

// CourseHandler handles the course catalog endpoints.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register wires the course routes. Mutations require staff roles.
func (h *CourseHandler) Register(router fiber.Router, staffOnly fiber.Handler) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", staffOnly, h.create)
	router.Put("/:id", staffOnly, h.update)
	router.Delete("/:id", staffOnly, h.delete)
	router.Post("/:id/students/:userId", staffOnly, h.enroll)
	router.Delete("/:id/students/:userId", staffOnly, h.unenroll)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	courses, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, logger, err, "failed to list courses")
	}
	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CourseHandler) get(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	logger := requestLogger(h.logger, c)
	course, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, logger, err, "failed to get course")
	}
	return utils.SendSuccess(c, "course retrieved", course)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	course, err := h.service.Create(c.UserContext(), req)
	if err == nil {
		return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created", course)
	}
	return respond(c, logger, err, "course created", course)
}

func (h *CourseHandler) update(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	logger := requestLogger(h.logger, c)
	course, err := h.service.Update(c.UserContext(), id, req)
	return respond(c, logger, err, "course updated", course)
}

func (h *CourseHandler) delete(c *fiber.Ctx) error {
	id, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}

	logger := requestLogger(h.logger, c)
	err = h.service.Delete(c.UserContext(), id)
	return respond(c, logger, err, "course deleted", nil)
}

func (h *CourseHandler) enroll(c *fiber.Ctx) error {
	courseID, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}
	userID, err := parsePathID(c, "userId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	logger := requestLogger(h.logger, c)
	err = h.service.Enroll(c.UserContext(), courseID, userID)
	return respond(c, logger, err, "student enrolled", nil)
}

func (h *CourseHandler) unenroll(c *fiber.Ctx) error {
	courseID, err := parsePathID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}
	userID, err := parsePathID(c, "userId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	logger := requestLogger(h.logger, c)
	err = h.service.Unenroll(c.UserContext(), courseID, userID)
	return respond(c, logger, err, "student unenrolled", nil)
}
