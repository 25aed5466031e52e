package dto

// LoginRequest entrada para login: código de empleado y contraseña.
type LoginRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

// SetupPasswordRequest entrada del primer establecimiento de contraseña.
type SetupPasswordRequest struct {
	Code     string `json:"code"`
	Password string `json:"password"`
}

// ChangePasswordRequest entrada del cambio de contraseña (requiere Bearer Token).
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserResponse datos públicos del empleado (sin hash ni ámbito).
type UserResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SessionResponse token emitido + usuario.
type SessionResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NeedsSetupResponse el empleado existe pero aún no tiene contraseña.
type NeedsSetupResponse struct {
	NeedsPasswordSetup bool   `json:"needsPasswordSetup"`
	Code               string `json:"code"`
}
