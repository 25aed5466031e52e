package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-inquiry-api/internal/application/auth"
	"github.com/jhoicas/sales-inquiry-api/internal/application/dto"
	"github.com/jhoicas/sales-inquiry-api/internal/domain"
	"github.com/jhoicas/sales-inquiry-api/pkg/metrics"
)

// AuthHandler maneja login, setup inicial y cambio de contraseña.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	metrics *metrics.Metrics
}

// NewAuthHandler construye el handler de auth. m puede ser nil.
func NewAuthHandler(uc *auth.AuthUseCase, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{uc: uc, metrics: m}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "code, password"
// @Success      200   {object}  dto.SessionResponse
// @Success      200   {object}  dto.NeedsSetupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in.Code, in.Password)
	if err != nil {
		h.metrics.ObserveAuth("login", outcome(err))
		switch {
		case errors.Is(err, domain.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "Employee code and password are required"))
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("INVALID_CODE", "Invalid user code"))
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("INVALID_PASSWORD", "Invalid password"))
		}
		return writeError(c, err)
	}
	if out.NeedsSetup {
		h.metrics.ObserveAuth("login", "needs_setup")
		return c.JSON(dto.NeedsSetupResponse{NeedsPasswordSetup: true, Code: out.Code})
	}
	h.metrics.ObserveAuth("login", "ok")
	return c.JSON(sessionResponse(out.Session))
}

// SetupPassword godoc
// @Summary      Establecer la primera contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetupPasswordRequest  true  "code, password"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/setup-password [post]
func (h *AuthHandler) SetupPassword(c *fiber.Ctx) error {
	var in dto.SetupPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	session, err := h.uc.SetupPassword(c.UserContext(), in.Code, in.Password)
	if err != nil {
		h.metrics.ObserveAuth("setup", outcome(err))
		return writeError(c, err)
	}
	h.metrics.ObserveAuth("setup", "ok")
	return c.JSON(sessionResponse(session))
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ChangePasswordRequest  true  "currentPassword, newPassword"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claim, ok := GetSession(c)
	if !ok {
		return writeError(c, domain.ErrUnauthenticated)
	}
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	err := h.uc.ChangePassword(c.UserContext(), claim, in.CurrentPassword, in.NewPassword)
	if err != nil {
		h.metrics.ObserveAuth("change", outcome(err))
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.NewError("INVALID_PASSWORD", "Current password is incorrect"))
		}
		return writeError(c, err)
	}
	h.metrics.ObserveAuth("change", "ok")
	return c.JSON(dto.MessageResponse{Message: "Password changed successfully"})
}

func sessionResponse(s *auth.Session) dto.SessionResponse {
	return dto.SessionResponse{
		Token: s.Token,
		User:  dto.UserResponse{Code: s.Claim.Code, Name: s.Claim.Name},
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "Invalid request body"))
}

// outcome etiqueta de resultado para la métrica auth_outcomes_total.
func outcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "invalid_input"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrPasswordAlreadySet):
		return "already_set"
	default:
		return "error"
	}
}
