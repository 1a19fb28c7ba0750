package project

import "context"

// Repository defines project storage.
type Repository interface {
	GetAll(ctx context.Context) ([]*Project, error)
	GetByID(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, p *Project) error
	UpdateStatus(ctx context.Context, id string, status Status, finishedAt string) error
}
