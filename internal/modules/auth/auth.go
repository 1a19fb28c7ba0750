package auth

import (
	"context"

	"github.com/dgrijalva/jwt-go"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
	// Verify parses a bearer token and returns the staff id it was issued to.
	Verify(token string) (string, error)
}

// Claims are the JWT claims issued at login.
type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}
