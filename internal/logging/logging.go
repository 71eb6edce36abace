package logging

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"patchwork/internal/auth"
)

// NoCredential is the actor placeholder for unauthenticated requests.
const NoCredential = "no-credential"

// Actor returns the authenticated caller's email, or a placeholder.
func Actor(c echo.Context) string {
	if claims, ok := auth.ClaimsFrom(c); ok {
		return claims.Email
	}
	return NoCredential
}

// Fields builds the log fields every endpoint carries at entry and at
// each terminal outcome: request id, success flag, actor, path, message.
func Fields(c echo.Context, success bool, actor, message string) []zap.Field {
	return []zap.Field{
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Bool("success", success),
		zap.String("actor", actor),
		zap.String("path", c.Request().URL.Path),
		zap.String("message", message),
	}
}
