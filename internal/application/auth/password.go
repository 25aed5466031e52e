package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost factor de trabajo fijo usado para almacenar y verificar contraseñas.
const DefaultBcryptCost = 10

// PasswordHasher hashea y compara contraseñas con el mismo algoritmo.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

// BcryptHasher implementa PasswordHasher con bcrypt (sal aleatoria incluida en el hash).
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher construye el hasher; cost <= 0 usa DefaultBcryptCost.
func NewBcryptHasher(cost int) BcryptHasher {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	return BcryptHasher{cost: cost}
}

// Hash devuelve el hash bcrypt de password.
func (h BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// Compare indica si password corresponde al hash. La comparación de bcrypt es de tiempo constante.
// Un hash corrupto se reporta como error, no como contraseña incorrecta.
func (h BcryptHasher) Compare(hash, password string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("bcrypt: %w", err)
	}
}
