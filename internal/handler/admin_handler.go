package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/store"
	"github.com/noah-isme/edupro-go-api/internal/utils"
)

// AdminHandler handles the dashboard, audit trail, exports, and backups.
type AdminHandler struct {
	admin   service.AdminService
	exports service.ExportService
	logger  zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(admin service.AdminService, exports service.ExportService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:   admin,
		exports: exports,
		logger:  logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register wires the admin routes. The caller guards the whole group with the
// admin role check.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.dashboard)
	router.Get("/logs", h.systemLogs)
	router.Get("/exports/users", h.exportUsers)
	router.Get("/exports/attendance", h.exportAttendance)
	router.Get("/backup", h.exportBackup)
	router.Post("/backup/restore", h.restoreBackup)
}

func (h *AdminHandler) dashboard(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	dashboard, err := h.admin.Dashboard(c.UserContext())
	if err != nil {
		return respondError(c, logger, err, "failed to build dashboard")
	}
	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}

func (h *AdminHandler) systemLogs(c *fiber.Ctx) error {
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid limit")
	}
	if limit <= 0 {
		limit = 100
	}
	action := strings.ToUpper(strings.TrimSpace(c.Query("action")))

	logger := requestLogger(h.logger, c)
	logs, err := h.admin.SystemLogs(c.UserContext(), limit, action)
	if err != nil {
		return respondError(c, logger, err, "failed to list system logs")
	}
	return utils.SendSuccess(c, "system logs retrieved", logs)
}

// exportUsers streams the account table. The format query selects csv
// (default) or xlsx.
func (h *AdminHandler) exportUsers(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)

	var data []byte
	var err error
	var filename, contentType string
	if strings.EqualFold(c.Query("format"), "xlsx") {
		data, err = h.exports.UsersXLSX(c.UserContext())
		filename, contentType = "users.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	} else {
		data, err = h.exports.UsersCSV(c.UserContext())
		filename, contentType = "users.csv", "text/csv"
	}
	if err != nil {
		return respondError(c, logger, err, "failed to export users")
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func (h *AdminHandler) exportAttendance(c *fiber.Ctx) error {
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

	var data []byte
	var filename, contentType string
	if strings.EqualFold(c.Query("format"), "xlsx") {
		data, err = h.exports.AttendanceXLSX(c.UserContext(), filter)
		filename, contentType = "attendance.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	} else {
		data, err = h.exports.AttendanceCSV(c.UserContext(), filter)
		filename, contentType = "attendance.csv", "text/csv"
	}
	if err != nil {
		return respondError(c, logger, err, "failed to export attendance")
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func (h *AdminHandler) exportBackup(c *fiber.Ctx) error {
	logger := requestLogger(h.logger, c)
	backup, err := h.admin.ExportBackup(c.UserContext())
	return respond(c, logger, err, "backup exported", backup)
}

func (h *AdminHandler) restoreBackup(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "backup payload is required")
	}

	logger := requestLogger(h.logger, c)
	err := h.admin.RestoreBackup(c.UserContext(), body)
	return respond(c, logger, err, "backup restored", nil)
}
