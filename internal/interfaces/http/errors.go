package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/sales-inquiry-api/internal/application/dto"
	"github.com/jhoicas/sales-inquiry-api/internal/domain"
)

// writeError traduce un error de dominio a status + dto.ErrorResponse.
// Los mensajes son genéricos: nunca incluyen hashes, SQL ni detalle interno.
func writeError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("request_id", requestID(c)).
			Msg("error interno")
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrWeakPassword):
		return fiber.StatusBadRequest, dto.NewError("WEAK_PASSWORD", "Password must be at least 6 characters")
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, dto.NewError("VALIDATION", "Invalid or missing fields")
	case errors.Is(err, domain.ErrPasswordAlreadySet):
		return fiber.StatusBadRequest, dto.NewError("PASSWORD_ALREADY_SET", "Password already set. Please login.")
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.NewError("NOT_FOUND", "Employee not found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, dto.NewError("INVALID_CREDENTIALS", "Invalid credentials")
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized, dto.NewError("MISSING_TOKEN", "Authentication required")
	case errors.Is(err, domain.ErrInvalidToken):
		return fiber.StatusUnauthorized, dto.NewError("INVALID_TOKEN", "Invalid or expired token")
	case errors.Is(err, domain.ErrAccessScopeMissing):
		return fiber.StatusForbidden, dto.NewError("NO_ACCESS_SCOPE", "No data access scope assigned")
	default:
		return fiber.StatusInternalServerError, dto.NewError("INTERNAL", "Internal server error")
	}
}
