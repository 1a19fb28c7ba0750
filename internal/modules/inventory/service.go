package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
)

// AllCategories is the category filter value that disables filtering.
const AllCategories = "Todas"

// Service defines catalog business logic. Stock changes are owned by the ledger.
type Service interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	UpdateItem(ctx context.Context, id string, patch ItemPatch) (*Item, error)
	ListItems(ctx context.Context, filter ListFilter) ([]*Item, error)
	LowStock(ctx context.Context) ([]*Item, error)
	AssignCategory(ctx context.Context, ids []string, category string) error
	ImportItems(ctx context.Context, items []*Item) (*ImportResult, error)
}

// CreateItemRequest holds the data for a new catalog item.
type CreateItemRequest struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"item" validate:"required"`
	Brand             string `json:"brand"`
	Reference         string `json:"reference"`
	Category          string `json:"category"`
	CurrentStock      int    `json:"current_stock" validate:"gte=0"`
	LowStockThreshold int    `json:"low_stock_threshold" validate:"gte=0"`
	ImageURL          string `json:"image_url"`
}

// ListFilter narrows ListItems.
type ListFilter struct {
	Search   string
	Category string
}

// ImportResult reports how a spreadsheet batch was applied.
type ImportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

type service struct {
	repo             Repository
	defaultThreshold int
}

// NewService creates a new inventory service. defaultThreshold applies to items created without one.
func NewService(repo Repository, defaultThreshold int) Service {
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultLowStockThreshold
	}
	return &service{repo: repo, defaultThreshold: defaultThreshold}
}

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Invalid("item name is required")
	}
	if req.CurrentStock < 0 {
		return nil, apperr.Invalid("current_stock cannot be negative")
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	threshold := req.LowStockThreshold
	if threshold <= 0 {
		threshold = s.defaultThreshold
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = Uncategorized
	}
	it := &Item{
		ID:                id,
		Name:              name,
		Brand:             strings.TrimSpace(req.Brand),
		Reference:         strings.TrimSpace(req.Reference),
		Category:          category,
		CurrentStock:      req.CurrentStock,
		LowStockThreshold: threshold,
		ImageURL:          req.ImageURL,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetItem(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateItem(ctx context.Context, id string, patch ItemPatch) (*Item, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperr.Invalid("item name cannot be empty")
	}
	if patch.LowStockThreshold != nil && *patch.LowStockThreshold <= 0 {
		return nil, apperr.Invalid("low_stock_threshold must be greater than zero")
	}
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	patch.Apply(it)
	return it, nil
}

func (s *service) ListItems(ctx context.Context, filter ListFilter) ([]*Item, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Item, 0, len(items))
	for _, it := range items {
		if filter.Category != "" && filter.Category != AllCategories && it.Category != filter.Category {
			continue
		}
		if !it.Matches(filter.Search) {
			continue
		}
		out = append(out, it)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *service) LowStock(ctx context.Context) ([]*Item, error) {
	items, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterLowStock(items), nil
}

// FilterLowStock returns the items at or below their threshold, keeping input order.
func FilterLowStock(items []*Item) []*Item {
	out := []*Item{}
	for _, it := range items {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	return out
}

func (s *service) AssignCategory(ctx context.Context, ids []string, category string) error {
	if len(ids) == 0 {
		return apperr.Invalid("at least one item id is required")
	}
	if strings.TrimSpace(category) == "" {
		return apperr.Invalid("category is required")
	}
	ids = uniqueIDs(ids)
	for _, id := range ids {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return s.repo.AssignCategory(ctx, ids, category)
}

// uniqueIDs drops repeated ids, keeping first-seen order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// ImportItems creates every item whose id is not already in the catalog.
func (s *service) ImportItems(ctx context.Context, items []*Item) (*ImportResult, error) {
	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, it := range existing {
		seen[it.ID] = true
	}

	res := &ImportResult{}
	for _, it := range items {
		if it == nil {
			res.Skipped++
			continue
		}
		if it.ID != "" && seen[it.ID] {
			res.Skipped++
			continue
		}
		created, err := s.CreateItem(ctx, CreateItemRequest{
			ID:                it.ID,
			Name:              it.Name,
			Brand:             it.Brand,
			Reference:         it.Reference,
			Category:          it.Category,
			CurrentStock:      it.CurrentStock,
			LowStockThreshold: it.LowStockThreshold,
			ImageURL:          it.ImageURL,
		})
		if err != nil {
			if errors.Is(err, apperr.ErrInvalidInput) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("import item %q: %w", it.Name, err)
		}
		seen[created.ID] = true
		res.Created++
	}
	return res, nil
}
