package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/unievents/unievents/internal/service"
)

// statusFor maps the service error taxonomy to HTTP statuses. Every service
// error is a recoverable, caller-facing condition; anything unmapped is a 500
// and gets logged at the call site.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrLocalityNotFound),
		errors.Is(err, service.ErrCouponNotFound),
		errors.Is(err, service.ErrCartLineNotFound):
		return fiber.StatusNotFound, true
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrLegalIDExists),
		errors.Is(err, service.ErrEventNameExists),
		errors.Is(err, service.ErrCouponCodeExists):
		return fiber.StatusConflict, true
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, true
	case errors.Is(err, service.ErrAccountDeleted),
		errors.Is(err, service.ErrAccountInactive),
		errors.Is(err, service.ErrNoCart),
		errors.Is(err, service.ErrNotBeneficiary):
		return fiber.StatusForbidden, true
	case errors.Is(err, service.ErrInvalidCouponVariant):
		return fiber.StatusUnprocessableEntity, true
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrCodeMismatch),
		errors.Is(err, service.ErrCodeExpired),
		errors.Is(err, service.ErrNoActiveRecovery),
		errors.Is(err, service.ErrInsufficientCapacity),
		errors.Is(err, service.ErrExpiredDate),
		errors.Is(err, service.ErrCouponNotRedeemable):
		return fiber.StatusBadRequest, true
	}
	return 0, false
}

// businessError writes the mapped status and message for a service error.
// Reports false when the error is not part of the taxonomy.
func businessError(c *fiber.Ctx, err error) (bool, error) {
	status, ok := statusFor(err)
	if !ok {
		return false, nil
	}
	return true, c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// formatValidationError converts validator errors into a caller-readable
// message for the first failing field.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required", "required_if":
				return "invalid request: " + field + " is required"
			case "notblank":
				return "invalid request: " + field + " cannot be blank"
			case "email":
				return "invalid request: " + field + " must be a valid email"
			case "min":
				return "invalid request: " + field + " is too short"
			case "max":
				return "invalid request: " + field + " exceeds maximum length"
			case "gte", "gt":
				return "invalid request: " + field + " is too small"
			case "lte":
				return "invalid request: " + field + " is too large"
			case "oneof":
				return "invalid request: " + field + " has an unknown value"
			case "future":
				return "invalid request: " + field + " must be in the future"
			default:
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}
