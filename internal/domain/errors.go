package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation         = errors.New("entrada inválida")
	ErrWeakPassword       = fmt.Errorf("%w: la contraseña debe tener al menos %d caracteres", ErrValidation, MinPasswordLength)
	ErrNotFound           = errors.New("empleado no encontrado")
	ErrPasswordAlreadySet = errors.New("la contraseña ya fue establecida")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthenticated    = errors.New("autenticación requerida")
	ErrInvalidToken       = errors.New("token inválido o expirado")
	ErrAccessScopeMissing = errors.New("el empleado no tiene ámbito de acceso asignado")
	ErrStoreUnavailable   = errors.New("almacén de datos no disponible")
)

// MinPasswordLength longitud mínima de contraseña para setup y cambio.
const MinPasswordLength = 6
