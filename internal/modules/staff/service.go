package staff

import "context"

// Service defines the interface for staff account business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Staff, error)
	Get(ctx context.Context, id string) (*Staff, error)
}

// RegisterRequest holds the data for a new staff account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}
