package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/inventory"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/project"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

// memItems writes stock one item at a time, like a store without multi-row transactions.
type memItems struct {
	mu          sync.Mutex
	items       map[string]*inventory.Item
	failStock   map[string]error
	stockWrites int
}

func newMemItems(items ...*inventory.Item) *memItems {
	m := &memItems{items: map[string]*inventory.Item{}, failStock: map[string]error{}}
	for _, it := range items {
		m.items[it.ID] = it
	}
	return m
}

func (m *memItems) stock(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id].CurrentStock
}

func (m *memItems) GetAll(ctx context.Context) ([]*inventory.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*inventory.Item, 0, len(m.items))
	for _, it := range m.items {
		cp := *it
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memItems) GetByID(ctx context.Context, id string) (*inventory.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("item", id)
	}
	cp := *it
	return &cp, nil
}

func (m *memItems) Create(ctx context.Context, it *inventory.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *it
	m.items[it.ID] = &cp
	return nil
}

func (m *memItems) Update(ctx context.Context, id string, patch inventory.ItemPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return apperr.NotFound("item", id)
	}
	patch.Apply(it)
	return nil
}

func (m *memItems) UpdateStock(ctx context.Context, id string, newStock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failStock[id]; err != nil {
		return err
	}
	it, ok := m.items[id]
	if !ok {
		return apperr.NotFound("item", id)
	}
	m.stockWrites++
	it.CurrentStock = newStock
	return nil
}

func (m *memItems) AssignCategory(ctx context.Context, ids []string, category string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		if _, ok := m.items[id]; !ok {
			return apperr.NotFound("item", id)
		}
		m.items[id].Category = category
	}
	return nil
}

// batchItems applies all deltas or none.
type batchItems struct {
	*memItems
	batches   int
	failBatch error
}

func (b *batchItems) ApplyStockDeltas(ctx context.Context, deltas []inventory.StockDelta) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failBatch != nil {
		return b.failBatch
	}
	for _, d := range deltas {
		it, ok := b.items[d.ItemID]
		if !ok {
			return apperr.NotFound("item", d.ItemID)
		}
		if it.CurrentStock+d.Delta < 0 {
			return fmt.Errorf("stock of %s would go negative: %w", d.ItemID, apperr.ErrConflict)
		}
	}
	for _, d := range deltas {
		b.items[d.ItemID].CurrentStock += d.Delta
	}
	b.batches++
	return nil
}

type memTransactions struct {
	mu      sync.Mutex
	txs     []*transaction.Transaction
	seq     int64
	failErr error
}

func (m *memTransactions) GetAll(ctx context.Context) ([]*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*transaction.Transaction, len(m.txs))
	for i, t := range m.txs {
		cp := *t
		out[i] = &cp
	}
	return out, nil
}

func (m *memTransactions) Create(ctx context.Context, t *transaction.Transaction) error {
	return m.CreateWithLines(ctx, t, nil)
}

func (m *memTransactions) CreateWithLines(ctx context.Context, t *transaction.Transaction, lines []transaction.Line) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.seq++
	t.Seq = m.seq
	cp := *t
	cp.Items = append([]transaction.Line(nil), lines...)
	m.txs = append(m.txs, &cp)
	return nil
}

func (m *memTransactions) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.txs)
}

type memProjects map[string]*project.Project

func (m memProjects) GetByID(ctx context.Context, id string) (*project.Project, error) {
	p, ok := m[id]
	if !ok {
		return nil, apperr.NotFound("project", id)
	}
	return p, nil
}

func item(id, name, brand string, stock int) *inventory.Item {
	return &inventory.Item{ID: id, Name: name, Brand: brand, CurrentStock: stock, LowStockThreshold: 10}
}

var testProjects = memProjects{
	"P": {ID: "P", Name: "Finca El Sol", Status: project.StatusActive},
	"F": {ID: "F", Name: "Hacienda Vieja", Status: project.StatusFinished},
}
