package entity

// AccessScopeAll valor centinela de ámbito que otorga visibilidad sin restricción.
const AccessScopeAll = "ALL"

// Employee representa la cuenta de un empleado (M_EMPLOYEE en el ERP).
// AccessScope lo provisiona el ERP; este servicio nunca lo modifica.
type Employee struct {
	Code         string
	Name         string
	PasswordHash *string // nil: contraseña aún no establecida
	AccessScope  string
}

// HasPassword indica si el empleado ya completó el setup de contraseña.
func (e *Employee) HasPassword() bool {
	return e != nil && e.PasswordHash != nil && *e.PasswordHash != ""
}

// Claim devuelve la instantánea de sesión para este empleado.
func (e *Employee) Claim() SessionClaim {
	return SessionClaim{Code: e.Code, Name: e.Name, AccessScope: e.AccessScope}
}
