package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/sales-inquiry-api/internal/domain"
	"github.com/jhoicas/sales-inquiry-api/internal/domain/entity"
)

// SessionTTL vigencia fija de un token de sesión desde su emisión.
const SessionTTL = 8 * time.Hour

// Claims incluye los claims estándar JWT más la instantánea del empleado.
// AccessScope es el único valor en el que confía el builder de consultas.
type Claims struct {
	jwt.RegisteredClaims
	Code        string `json:"code"`
	Name        string `json:"name"`
	AccessScope string `json:"access_scope"`
}

// TokenManager emite y verifica tokens HS256 con un secreto del servidor.
type TokenManager struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenManager construye el manager. Un secreto vacío es un error de configuración.
func NewTokenManager(secret, issuer string) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt: secret vacío")
	}
	return &TokenManager{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

// WithClock devuelve una copia que usa now como reloj (tests de expiración).
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *m
	cp.now = now
	return &cp
}

// Issue firma un token con la instantánea de sesión y vigencia SessionTTL.
func (m *TokenManager) Issue(claim entity.SessionClaim) (string, error) {
	now := m.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   claim.Code,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
		Code:        claim.Code,
		Name:        claim.Name,
		AccessScope: claim.AccessScope,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, nil
}

// Verify valida firma, algoritmo y expiración y devuelve la instantánea embebida.
// Cualquier fallo se reporta como domain.ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (entity.SessionClaim, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return entity.SessionClaim{}, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Code == "" {
		return entity.SessionClaim{}, domain.ErrInvalidToken
	}
	return entity.SessionClaim{
		Code:        claims.Code,
		Name:        claims.Name,
		AccessScope: claims.AccessScope,
	}, nil
}
