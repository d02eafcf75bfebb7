package middleware

import (
	"errors"
	"time"

	"inventory/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// RequestLogger logs the start and completion of every request with its
// request ID. It must run after the requestid middleware.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		if rid, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && rid != "" {
			ctx = log.WithRequestID(ctx, rid)
		}
		ctx = log.WithFields(ctx, map[string]any{
			"method": c.Method(),
			"path":   c.Path(),
		})
		c.SetUserContext(ctx)

		start := time.Now()
		log.Info(ctx, "request.start")

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		// the auth middleware may have attached user_id further down the chain
		done := log.WithFields(c.UserContext(), map[string]any{
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		log.Info(done, "request.complete")
		return err
	}
}
