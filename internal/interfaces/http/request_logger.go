package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/sales-inquiry-api/pkg/logger"
)

// RequestID asigna un X-Request-ID (uuid v4) si el cliente no envía uno.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: func() string { return uuid.New().String() },
	})
}

func requestID(c *fiber.Ctx) string {
	s, _ := c.Locals("requestid").(string)
	return s
}

// RequestLogger registra una línea por petición: método, ruta, status, latencia y empleado.
// No registra cuerpos ni cabeceras (contienen contraseñas y tokens).
func RequestLogger(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		ev := l.Info()
		status := c.Response().StatusCode()
		if status >= fiber.StatusInternalServerError || err != nil {
			ev = l.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Str("user", GetUserCode(c)).
			Msg("http")
		return err
	}
}
