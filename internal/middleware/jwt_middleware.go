package middleware

import (
	"strings"

	"inventory/internal/access"
	"inventory/internal/logger"
	"inventory/internal/responses"
	"inventory/internal/services"
	pkgerrors "inventory/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

const actorKey = "actor"

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(authService *services.AuthService, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return responses.WriteError(c, log, pkgerrors.Unauthorized("Authorization header is required"))
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return responses.WriteError(c, log, pkgerrors.Unauthorized("Authorization header format must be 'Bearer <token>'"))
		}

		actor, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Debug(log.WithField(c.UserContext(), "error", err.Error()), "jwt validation failed")
			return responses.WriteError(c, log, err)
		}

		c.Locals(actorKey, actor)
		c.Locals("user_id", actor.UserID)
		c.Locals("username", actor.Username)
		c.SetUserContext(log.WithUserID(c.UserContext(), actor.UserID))

		return c.Next()
	}
}

// Actor returns the authenticated caller stored by AuthRequired.
func Actor(c *fiber.Ctx) access.Actor {
	actor, _ := c.Locals(actorKey).(access.Actor)
	return actor
}
