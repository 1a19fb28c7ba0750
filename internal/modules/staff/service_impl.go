package staff

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
	"github.com/georgemunganga/jfsolar-inventory/internal/httpx"
)

type service struct {
	repo Repository
}

// NewService creates a new staff service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Staff, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := httpx.Validate(req); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	member := &Staff{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(req.Name),
	}

	if err := s.repo.Create(ctx, member); err != nil {
		if httpx.IsDuplicateKey(err) {
			return nil, fmt.Errorf("email %s is already registered: %w", req.Email, apperr.ErrConflict)
		}
		return nil, err
	}

	return member, nil
}

func (s *service) Get(ctx context.Context, id string) (*Staff, error) {
	return s.repo.GetByID(ctx, id)
}
