package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/staff"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

var errInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperr.ErrUnauthorized)

type service struct {
	staffRepo staff.Repository
	jwtKey    []byte
	now       func() time.Time
}

// NewService creates a new auth service signing tokens with secret.
func NewService(staffRepo staff.Repository, secret string) Service {
	return &service{staffRepo: staffRepo, jwtKey: []byte(secret), now: time.Now}
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	member, err := s.staffRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, apperr.ErrNotFound) {
		return "", errInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return "", errInvalidCredentials
	}

	now := s.now()
	claims := &Claims{
		Email: member.Email,
		StandardClaims: jwt.StandardClaims{
			Subject:   member.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(TokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *service) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token: %w", apperr.ErrUnauthorized)
	}
	return claims.Subject, nil
}
