package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sales-inquiry-api/internal/domain"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
)

// Locals keys para la sesión verificada en Fiber.
const (
	LocalSession  = "session"
	LocalUserCode = "user_code"
)

// TokenVerifier contrato mínimo del middleware; lo implementa *jwt.TokenManager.
type TokenVerifier interface {
	Verify(token string) (entity.SessionClaim, error)
}

// AuthMiddleware valida el Bearer Token y deja la sesión verificada en c.Locals.
// Responde 401 sin llamar al siguiente handler si falta o no es válido.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return writeError(c, err)
		}
		claim, err := verifier.Verify(token)
		if err != nil {
			return writeError(c, domain.ErrInvalidToken)
		}
		c.Locals(LocalSession, claim)
		c.Locals(LocalUserCode, claim.Code)
		return c.Next()
	}
}

// bearerToken extrae el token de "Bearer <token>"; domain.ErrUnauthenticated si falta o está mal formado.
func bearerToken(header string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", domain.ErrUnauthenticated
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", domain.ErrUnauthenticated
	}
	return token, nil
}

// GetSession devuelve la sesión verificada (después del middleware de auth).
func GetSession(c *fiber.Ctx) (entity.SessionClaim, bool) {
	claim, ok := c.Locals(LocalSession).(entity.SessionClaim)
	return claim, ok
}

// GetUserCode devuelve el código del empleado autenticado o "".
func GetUserCode(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserCode).(string)
	return s
}
