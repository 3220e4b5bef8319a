package services

import (
	"fmt"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/golang-jwt/jwt/v5"
)

type tokenService struct {
	secret []byte
	issuer string
	expiry time.Duration
}

// NewTokenService creates the JWT issuer.
func NewTokenService(secret string, issuer string, expiry time.Duration) portssvc.TokenSvcFacade {
	return &tokenService{secret: []byte(secret), issuer: issuer, expiry: expiry}
}

// Generate issues an HS256 bearer token with the user ID as subject.
func (s *tokenService) Generate(user *domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.UserID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
