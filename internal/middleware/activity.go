package middleware

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edupro-go-api/internal/service"
	"github.com/noah-isme/edupro-go-api/internal/utils"
)

// touchDebounce limits how often authenticated traffic rewrites the activity
// timestamp.
const touchDebounce = 30 * time.Second

// ActivityTracker expires the portal session after the idle timeout and
// refreshes the activity stamp on authenticated traffic. Expiry is checked
// before the handler runs so a stale session never serves a request.
func ActivityTracker(auth service.AuthService, logger zerolog.Logger) fiber.Handler {
	activityLogger := logger.With().Str("component", "activity_middleware").Logger()

	var mu sync.Mutex
	var lastTouch time.Time

	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		expired, err := auth.ExpireIfIdle(ctx)
		if err != nil {
			activityLogger.Warn().Err(err).Msg("idle check failed")
		}
		if expired {
			return utils.SendError(c, fiber.StatusUnauthorized, "session expired due to inactivity")
		}

		mu.Lock()
		due := time.Since(lastTouch) >= touchDebounce
		if due {
			lastTouch = time.Now()
		}
		mu.Unlock()

		if due {
			if err := auth.TouchActivity(ctx); err != nil {
				activityLogger.Warn().Err(err).Msg("failed to refresh activity stamp")
			}
		}

		return c.Next()
	}
}
