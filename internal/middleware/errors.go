package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/krisnabayu-afk/Flux-version-0.4/internal/apperr"
	"github.com/rs/zerolog"
)

func statusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindConflict:
		return fiber.StatusConflict
	case apperr.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperr.KindInternal:
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders service and Fiber errors as {"error", "reason"}.
// Internal causes are logged, never returned.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		var ae *apperr.Error
		if !errors.As(err, &ae) {
			ae = &apperr.Error{Kind: apperr.KindInternal, Message: "internal error", Err: err}
		}
		status := statusFor(ae.Kind)
		if status == fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
			return c.Status(status).JSON(fiber.Map{"error": "internal server error"})
		}

		body := fiber.Map{"error": ae.Message}
		if ae.Reason != "" && ae.Kind != apperr.KindNotFound {
			body["reason"] = ae.Reason
		}
		return c.Status(status).JSON(body)
	}
}
