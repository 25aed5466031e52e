package repository

import (
	"context"

	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
)

// EmployeeRepository puerto de persistencia de credenciales (DIP).
// FindByCode devuelve (nil, nil) si no existe un empleado activo con ese código.
// SetPasswordHash devuelve domain.ErrNotFound si el código no existe.
type EmployeeRepository interface {
	FindByCode(ctx context.Context, code string) (*entity.Employee, error)
	SetPasswordHash(ctx context.Context, code, hash string) error
}
