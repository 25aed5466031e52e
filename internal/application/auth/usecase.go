package auth

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/sales-inquiry-api/internal/domain"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/repository"
)

// TokenIssuer emite tokens de sesión firmados (lo implementa *jwt.TokenManager).
type TokenIssuer interface {
	Issue(claim entity.SessionClaim) (string, error)
}

// Session token emitido junto con la instantánea que contiene.
type Session struct {
	Token string
	Claim entity.SessionClaim
}

// LoginResult resultado de Login. NeedsSetup no es un error: el empleado existe pero
// aún no tiene contraseña y el cliente debe redirigir al setup con Code.
type LoginResult struct {
	NeedsSetup bool
	Code       string
	Session    *Session
}

// AuthUseCase ciclo de vida de la contraseña: setup inicial, login y cambio.
// Cada llamada hace una sola lectura al repositorio y, en setup/cambio, una sola escritura.
type AuthUseCase struct {
	employees repository.EmployeeRepository
	hasher    PasswordHasher
	tokens    TokenIssuer
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(employees repository.EmployeeRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{employees: employees, hasher: hasher, tokens: tokens}
}

// SetupPassword establece la primera contraseña de un empleado y emite su sesión.
//
// Retorna:
//   - domain.ErrValidation / domain.ErrWeakPassword  si faltan datos o la contraseña es corta.
//   - domain.ErrNotFound                            si el empleado no existe.
//   - domain.ErrPasswordAlreadySet                  si ya tenía contraseña.
func (uc *AuthUseCase) SetupPassword(ctx context.Context, code, password string) (*Session, error) {
	code = strings.TrimSpace(code)
	if code == "" || password == "" {
		return nil, domain.ErrValidation
	}
	if !strongEnough(password) {
		return nil, domain.ErrWeakPassword
	}

	emp, err := uc.employees.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar empleado: %w", err)
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	if emp.HasPassword() {
		return nil, domain.ErrPasswordAlreadySet
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("auth: hash de contraseña: %w", err)
	}
	if err := uc.employees.SetPasswordHash(ctx, emp.Code, hash); err != nil {
		return nil, fmt.Errorf("auth: guardar contraseña: %w", err)
	}
	return uc.issue(emp)
}

// Login verifica la contraseña de un empleado y emite su sesión.
// Si el empleado no tiene contraseña devuelve LoginResult{NeedsSetup: true}.
func (uc *AuthUseCase) Login(ctx context.Context, code, password string) (*LoginResult, error) {
	code = strings.TrimSpace(code)
	if code == "" || password == "" {
		return nil, domain.ErrValidation
	}

	emp, err := uc.employees.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar empleado: %w", err)
	}
	if emp == nil {
		return nil, domain.ErrNotFound
	}
	if !emp.HasPassword() {
		return &LoginResult{NeedsSetup: true, Code: emp.Code}, nil
	}

	ok, err := uc.hasher.Compare(*emp.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("auth: verificar contraseña: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	session, err := uc.issue(emp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Code: emp.Code, Session: session}, nil
}

// ChangePassword reemplaza la contraseña del empleado de una sesión ya verificada.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, claim entity.SessionClaim, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return domain.ErrValidation
	}
	if !strongEnough(newPassword) {
		return domain.ErrWeakPassword
	}

	emp, err := uc.employees.FindByCode(ctx, claim.Code)
	if err != nil {
		return fmt.Errorf("auth: buscar empleado: %w", err)
	}
	if emp == nil {
		return domain.ErrNotFound
	}
	if !emp.HasPassword() {
		return domain.ErrInvalidCredentials
	}

	ok, err := uc.hasher.Compare(*emp.PasswordHash, currentPassword)
	if err != nil {
		return fmt.Errorf("auth: verificar contraseña: %w", err)
	}
	if !ok {
		return domain.ErrInvalidCredentials
	}

	hash, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("auth: hash de contraseña: %w", err)
	}
	if err := uc.employees.SetPasswordHash(ctx, emp.Code, hash); err != nil {
		return fmt.Errorf("auth: guardar contraseña: %w", err)
	}
	return nil
}

func (uc *AuthUseCase) issue(emp *entity.Employee) (*Session, error) {
	claim := emp.Claim()
	token, err := uc.tokens.Issue(claim)
	if err != nil {
		return nil, fmt.Errorf("auth: emitir token: %w", err)
	}
	return &Session{Token: token, Claim: claim}, nil
}

func strongEnough(password string) bool {
	return utf8.RuneCountInString(password) >= domain.MinPasswordLength
}
