package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CashierClaims are the claims carried by a cashier token. Tokens are issued
// by the host back office; this service only verifies them.
type CashierClaims struct {
	CashierID uuid.UUID `json:"cashier_id"`
	Name      string    `json:"name"`
	BranchID  string    `json:"branch_id"`
	jwt.RegisteredClaims
}

// TokenVerifier validates cashier tokens against the shared secret.
type TokenVerifier struct {
	secretKey []byte
}

// NewTokenVerifier creates a new token verifier
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secretKey: []byte(secret)}
}

// Verify validates a token and returns its claims
func (v *TokenVerifier) Verify(tokenString string) (*CashierClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CashierClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secretKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CashierClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Sign issues a token for the given claims. Used by tests and local tooling;
// production tokens come from the host application.
func (v *TokenVerifier) Sign(cashierID uuid.UUID, name, branchID string, ttl time.Duration) (string, error) {
	claims := &CashierClaims{
		CashierID: cashierID,
		Name:      name,
		BranchID:  branchID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   cashierID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secretKey)
}
