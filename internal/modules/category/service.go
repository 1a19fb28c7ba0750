package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
)

// Service manages category names.
type Service interface {
	List(ctx context.Context) ([]string, error)
	Create(ctx context.Context, name string) (bool, error)
	Rename(ctx context.Context, oldName, newName string) (int, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) List(ctx context.Context) ([]string, error) {
	return s.repo.GetAll(ctx)
}

// Create is idempotent: an existing name is reported with created=false.
func (s *service) Create(ctx context.Context, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, apperr.Invalid("category name is required")
	}
	return s.repo.Create(ctx, name)
}

// Rename moves every item from oldName to newName. Renaming onto an existing category merges them.
func (s *service) Rename(ctx context.Context, oldName, newName string) (int, error) {
	oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return 0, apperr.Invalid("both the current and the new category name are required")
	}
	if oldName == newName {
		return 0, apperr.Invalid(fmt.Sprintf("category %q already has that name", oldName))
	}
	return s.repo.Rename(ctx, oldName, newName)
}
