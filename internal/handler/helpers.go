package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/biometric"
	"github.com/noah-isme/edupro-go-api/internal/middleware"
	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/store"
	"github.com/noah-isme/edupro-go-api/internal/utils"
)

func parsePathID(c *fiber.Ctx, key string) (int64, error) {
	value := strings.TrimSpace(c.Params(key))
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// parseQueryID reads an optional int64 query parameter, nil when absent.
func parseQueryID(c *fiber.Ctx, key string) (*int64, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func userIDFromContext(c *fiber.Ctx) int64 {
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func userRoleFromContext(c *fiber.Ctx) string {
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// respondError maps service and store errors onto HTTP statuses. Unrecognised
// errors are logged and surfaced as a 500 with a generic message.
func respondError(c *fiber.Ctx, logger *zerolog.Logger, err error, fallback string) error {
	switch {
	case store.IsValidation(err), isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "record not found")
	case errors.Is(err, store.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "not allowed")
	case errors.Is(err, biometric.ErrCaptureInProgress):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	default:
		logger.Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}

// respond finishes a mutating request: a degraded persistence error still
// returns the payload with a durability warning, anything else is an error.
func respond(c *fiber.Ctx, logger *zerolog.Logger, err error, message string, data interface{}) error {
	if err == nil {
		return utils.SendSuccess(c, message, data)
	}
	if store.IsPersistence(err) {
		logger.Warn().Err(err).Msg("operation applied with degraded durability")
		return utils.SendDegraded(c, message, data)
	}
	return respondError(c, logger, err, message+" failed")
}
