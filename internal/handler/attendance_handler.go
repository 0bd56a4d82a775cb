package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/store"
	"github.com/noah-isme/edupro-go-api/internal/utils"
)

// AttendanceHandler handles the face-scan check-in endpoints.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register wires the attendance routes.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Post("/scan", h.startScan)
	router.Delete("/scan", h.cancelScan)
	router.Get("/scan", h.scanStatus)
	router.Get("", h.history)
	router.Get("/rate/:userId", h.rate)
}

// startScan begins a check-in capture for the authenticated user. The force
// query flag allows a second scan on the same day.
func (h *AttendanceHandler) startScan(c *fiber.Ctx) error {
	force := strings.EqualFold(c.Query("force"), "true")

	logger := requestLogger(h.logger, c)
	if err := h.service.StartScan(c.UserContext(), userIDFromContext(c), force); err != nil {
		return respondError(c, logger, err, "failed to start scan")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusAccepted, "scan started", h.service.ScanStatus(c.UserContext()))
}

func (h *AttendanceHandler) cancelScan(c *fiber.Ctx) error {
	if !h.service.CancelScan(c.UserContext()) {
		return utils.SendError(c, fiber.StatusConflict, "no scan in progress")
	}
	return utils.SendSuccess(c, "scan cancelled", nil)
}

func (h *AttendanceHandler) scanStatus(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "scan status", h.service.ScanStatus(c.UserContext()))
}

func (h *AttendanceHandler) history(c *fiber.Ctx) error {
	userID, err := parseQueryID(c, "userId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}
	courseID, err := parseQueryID(c, "courseId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid course id")
	}
	filter := store.AttendanceFilter{
		UserID:   userID,
		CourseID: courseID,
		Date:     strings.TrimSpace(c.Query("date")),
	}

	logger := requestLogger(h.logger, c)
	records, err := h.service.History(c.UserContext(), filter)
	if err != nil {
		return respondError(c, logger, err, "failed to list attendance")
	}
	return utils.SendSuccess(c, "attendance retrieved", records)
}

func (h *AttendanceHandler) rate(c *fiber.Ctx) error {
	userID, err := parsePathID(c, "userId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}
	rate := h.service.Rate(c.UserContext(), userID)
	return utils.SendSuccess(c, "attendance rate", fiber.Map{"userId": userID, "rate": rate})
}
