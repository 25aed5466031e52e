package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/sales-inquiry-api/internal/domain"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// Columnas flex del maestro de empleados del ERP:
//   - flexmaster1: '1' = empleado activo
//   - flextext3:   hash bcrypt de la contraseña (NULL o '' = sin establecer)
//   - flexmaster3: ámbito de acceso (prefijo de inchargecode o "ALL")
const (
	findEmployeeQuery = `
		SELECT code, name, flextext3, COALESCE(flexmaster3, '')
		FROM m_employee
		WHERE company = $1
		  AND lang = $2
		  AND flexmaster1 = '1'
		  AND code = $3`

	setPasswordHashQuery = `
		UPDATE m_employee
		SET flextext3 = $1
		WHERE company = $2
		  AND lang = $3
		  AND flexmaster1 = '1'
		  AND code = $4`
)

// EmployeeRepo adaptador de credenciales sobre la tabla m_employee.
type EmployeeRepo struct {
	q       Querier
	company string
	lang    string
}

// NewEmployeeRepository construye el adaptador para la empresa e idioma configurados. Pasar pool o tx.
func NewEmployeeRepository(q Querier, company, lang string) *EmployeeRepo {
	return &EmployeeRepo{q: q, company: company, lang: lang}
}

// FindByCode obtiene un empleado activo por código; (nil, nil) si no existe.
func (r *EmployeeRepo) FindByCode(ctx context.Context, code string) (*entity.Employee, error) {
	var (
		e    entity.Employee
		hash *string
	)
	err := r.q.QueryRow(ctx, findEmployeeQuery, r.company, r.lang, code).
		Scan(&e.Code, &e.Name, &hash, &e.AccessScope)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("employees.FindByCode", err)
	}
	if hash != nil && *hash != "" {
		e.PasswordHash = hash
	}
	return &e, nil
}

// SetPasswordHash reemplaza el hash de contraseña; domain.ErrNotFound si no se actualizó ninguna fila.
func (r *EmployeeRepo) SetPasswordHash(ctx context.Context, code, hash string) error {
	tag, err := r.q.Exec(ctx, setPasswordHashQuery, hash, r.company, r.lang, code)
	if err != nil {
		return storeErr("employees.SetPasswordHash", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
