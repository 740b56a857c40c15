package http

import (
	"errors"
	"runtime/debug"

	"cv-builder/internal/domain"
	"cv-builder/internal/logger"

	"github.com/gofiber/fiber/v2"
)

const internalMessage = "Something went wrong!"

// panicStackKey holds the stack captured when a handler panics.
const panicStackKey = "panicStack"

// statusOf maps an error to its response status and client-facing message.
func statusOf(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return fiber.StatusNotFound, "Session not found"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrConversion):
		return fiber.StatusInternalServerError, "Failed to generate PDF"
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	default:
		return fiber.StatusInternalServerError, internalMessage
	}
}

// ErrorHandler renders every handler error as {"message", "error"}. The
// error detail is left out in production; outside it, server errors carry a
// stack trace.
func ErrorHandler(production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, msg := statusOf(err)
		if status >= fiber.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		}
		body := fiber.Map{"message": msg}
		if !production {
			detail := err.Error()
			if status >= fiber.StatusInternalServerError {
				detail += "\n" + stackOf(c)
			}
			body["error"] = detail
		}
		return c.Status(status).JSON(body)
	}
}

// stackOf prefers the stack of a recovered panic over the current one.
func stackOf(c *fiber.Ctx) string {
	if s, ok := c.Locals(panicStackKey).(string); ok {
		return s
	}
	return string(debug.Stack())
}

// notFound answers requests that matched no route.
func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Route not found"})
}
