package entity

// SessionClaim contenido verificado de un token de sesión.
// Es una instantánea: no refleja cambios del empleado hasta que vuelva a autenticarse.
type SessionClaim struct {
	Code        string
	Name        string
	AccessScope string
}
