package service

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenService validates bearer tokens issued by the identity service.
// Token issuance lives outside this service.
type TokenService interface {
	// ValidateToken checks the validity of a token string against a secret.
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)
}
