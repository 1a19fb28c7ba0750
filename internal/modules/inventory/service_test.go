package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
)

type mockRepo struct {
	mu    sync.Mutex
	items map[string]*Item
	order []string
}

func newMockRepo(items ...*Item) *mockRepo {
	m := &mockRepo{items: map[string]*Item{}}
	for _, it := range items {
		m.items[it.ID] = it
		m.order = append(m.order, it.ID)
	}
	return m
}

func (m *mockRepo) GetAll(ctx context.Context) ([]*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Item, 0, len(m.order))
	for _, id := range m.order {
		cp := *m.items[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("item", id)
	}
	cp := *it
	return &cp, nil
}

func (m *mockRepo) Create(ctx context.Context, it *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *it
	m.items[it.ID] = &cp
	m.order = append(m.order, it.ID)
	return nil
}

func (m *mockRepo) Update(ctx context.Context, id string, patch ItemPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return apperr.NotFound("item", id)
	}
	patch.Apply(it)
	return nil
}

func (m *mockRepo) UpdateStock(ctx context.Context, id string, newStock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return apperr.NotFound("item", id)
	}
	it.CurrentStock = newStock
	return nil
}

// AssignCategory counts distinct rows updated, like the SQL store.
func (m *mockRepo) AssignCategory(ctx context.Context, ids []string, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	updated := map[string]bool{}
	for _, id := range ids {
		if it, ok := m.items[id]; ok {
			it.Category = category
			updated[id] = true
		}
	}
	if len(updated) != len(ids) {
		return apperr.NotFound("item", "batch")
	}
	return nil
}

func TestCreateItem_Defaults(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, 0)

	it, err := svc.CreateItem(context.Background(), CreateItemRequest{Name: "  Panel 550W ", Brand: "Jinko"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	if it.ID == "" {
		t.Error("expected generated id")
	}
	if it.Name != "Panel 550W" {
		t.Errorf("expected trimmed name, got %q", it.Name)
	}
	if it.LowStockThreshold != DefaultLowStockThreshold {
		t.Errorf("expected threshold %d, got %d", DefaultLowStockThreshold, it.LowStockThreshold)
	}
	if it.Category != Uncategorized {
		t.Errorf("expected category %q, got %q", Uncategorized, it.Category)
	}
}

func TestCreateItem_Validation(t *testing.T) {
	svc := NewService(newMockRepo(), 10)

	if _, err := svc.CreateItem(context.Background(), CreateItemRequest{Name: " "}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty name, got %v", err)
	}
	if _, err := svc.CreateItem(context.Background(), CreateItemRequest{Name: "Cable", CurrentStock: -1}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for negative stock, got %v", err)
	}
}

func TestListItems_SearchAndCategory(t *testing.T) {
	repo := newMockRepo(
		&Item{ID: "1", Name: "Inversor 5kW", Brand: "Growatt", Reference: "MIN-5000", Category: "Inversores"},
		&Item{ID: "2", Name: "Batería Litio", Brand: "Pylontech", Reference: "US3000", Category: "Baterías"},
		&Item{ID: "3", Name: "Inversor 3kW", Brand: "Huawei", Reference: "SUN2000", Category: "Inversores"},
	)
	svc := NewService(repo, 10)

	cases := []struct {
		name   string
		filter ListFilter
		want   []string
	}{
		{"all", ListFilter{}, []string{"2", "3", "1"}},
		{"all categories keyword", ListFilter{Category: AllCategories}, []string{"2", "3", "1"}},
		{"category", ListFilter{Category: "Inversores"}, []string{"3", "1"}},
		{"brand search", ListFilter{Search: "huawei"}, []string{"3"}},
		{"reference search", ListFilter{Search: "us30"}, []string{"2"}},
		{"search within category", ListFilter{Search: "growatt", Category: "Baterías"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.ListItems(context.Background(), tc.filter)
			if err != nil {
				t.Fatalf("ListItems failed: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d items, got %d", len(tc.want), len(got))
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestLowStockAndStatus(t *testing.T) {
	repo := newMockRepo(
		&Item{ID: "a", Name: "A", CurrentStock: 0, LowStockThreshold: 5},
		&Item{ID: "b", Name: "B", CurrentStock: 5, LowStockThreshold: 5},
		&Item{ID: "c", Name: "C", CurrentStock: 6, LowStockThreshold: 5},
		&Item{ID: "d", Name: "D", CurrentStock: 10, LowStockThreshold: 0},
	)
	svc := NewService(repo, 10)

	low, err := svc.LowStock(context.Background())
	if err != nil {
		t.Fatalf("LowStock failed: %v", err)
	}
	if len(low) != 3 {
		t.Fatalf("expected 3 low-stock items, got %d", len(low))
	}

	want := map[string]StockStatus{"a": StatusOutOfStock, "b": StatusLowStock, "c": StatusAvailable, "d": StatusLowStock}
	all, _ := repo.GetAll(context.Background())
	for _, it := range all {
		if it.Status() != want[it.ID] {
			t.Errorf("item %s: expected %s, got %s", it.ID, want[it.ID], it.Status())
		}
	}
}

func TestUpdateItem(t *testing.T) {
	repo := newMockRepo(&Item{ID: "1", Name: "Old", Brand: "X", CurrentStock: 4, LowStockThreshold: 3})
	svc := NewService(repo, 10)

	name := "New"
	it, err := svc.UpdateItem(context.Background(), "1", ItemPatch{Name: &name})
	if err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if it.Name != "New" || it.Brand != "X" || it.CurrentStock != 4 {
		t.Errorf("unexpected item after patch: %+v", it)
	}

	if _, err := svc.UpdateItem(context.Background(), "missing", ItemPatch{Name: &name}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	zero := 0
	if _, err := svc.UpdateItem(context.Background(), "1", ItemPatch{LowStockThreshold: &zero}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAssignCategory_UnknownItem(t *testing.T) {
	repo := newMockRepo(&Item{ID: "1", Name: "A", Category: "Herramientas"})
	svc := NewService(repo, 10)

	err := svc.AssignCategory(context.Background(), []string{"1", "ghost"}, "Paneles Solares")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	it, _ := repo.GetByID(context.Background(), "1")
	if it.Category != "Herramientas" {
		t.Errorf("expected category untouched, got %q", it.Category)
	}
}

func TestAssignCategory_RepeatedIDs(t *testing.T) {
	repo := newMockRepo(&Item{ID: "1", Name: "A", Category: "Herramientas"}, &Item{ID: "2", Name: "B"})
	svc := NewService(repo, 10)

	if err := svc.AssignCategory(context.Background(), []string{"1", "2", "1"}, "Paneles Solares"); err != nil {
		t.Fatalf("AssignCategory failed: %v", err)
	}
	for _, id := range []string{"1", "2"} {
		if it, _ := repo.GetByID(context.Background(), id); it.Category != "Paneles Solares" {
			t.Errorf("expected item %s moved, got %q", id, it.Category)
		}
	}
}

func TestImportItems_SkipsExistingIDs(t *testing.T) {
	repo := newMockRepo(&Item{ID: "1", Name: "Existing"})
	svc := NewService(repo, 10)

	res, err := svc.ImportItems(context.Background(), []*Item{
		{ID: "1", Name: "Existing again"},
		{ID: "2", Name: "Fresh", CurrentStock: 7},
		{Name: "No id"},
		{ID: "3", Name: ""},
	})
	if err != nil {
		t.Fatalf("ImportItems failed: %v", err)
	}
	if res.Created != 2 || res.Skipped != 2 {
		t.Errorf("expected 2 created / 2 skipped, got %+v", res)
	}
	it, err := repo.GetByID(context.Background(), "2")
	if err != nil || it.CurrentStock != 7 {
		t.Errorf("expected imported item 2 with stock 7, got %+v (%v)", it, err)
	}
}
