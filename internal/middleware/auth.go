package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/reachdesk/backend/internal/auth"
	"github.com/reachdesk/backend/internal/config"
	"github.com/reachdesk/backend/internal/http/dto"
	"go.uber.org/zap"
)

const CtxUserID = "user_id"

// AuthMiddleware is the identity gate. A request without a valid bearer
// token never reaches a handler.
func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "missing authorization header")
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader || tokenStr == "" {
			return unauthorized(c, "invalid authorization format")
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.String("request_id", GetRequestID(c)), zap.Error(err))
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(CtxUserID, claims.UserID)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: msg, RequestID: GetRequestID(c)})
}

// GetUserID returns the caller resolved by AuthMiddleware, or "".
func GetUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(CtxUserID).(string)
	return id
}
