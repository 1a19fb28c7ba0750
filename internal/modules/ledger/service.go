package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
	"github.com/georgemunganga/jfsolar-inventory/internal/config"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/inventory"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/project"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

// Service owns every stock mutation. Stock never goes below zero and a rejected request
// leaves every item untouched.
type Service interface {
	RecordEntry(ctx context.Context, req EntryRequest) (*Receipt, error)
	RecordBulkOutput(ctx context.Context, req BulkOutputRequest) (*Receipt, error)
	UpdateThreshold(ctx context.Context, itemID string, threshold int) (*inventory.Item, error)
}

// ProjectResolver looks up the project a dispatch is charged to.
type ProjectResolver interface {
	GetByID(ctx context.Context, id string) (*project.Project, error)
}

type service struct {
	items    inventory.Repository
	projects ProjectResolver
	recorder transaction.Recorder
}

func NewService(items inventory.Repository, projects ProjectResolver, recorder transaction.Recorder) Service {
	return &service{items: items, projects: projects, recorder: recorder}
}

func (s *service) RecordEntry(ctx context.Context, req EntryRequest) (*Receipt, error) {
	if req.Quantity <= 0 {
		return nil, apperr.Invalid("entry quantity must be greater than zero")
	}
	if err := checkDate(req.Date); err != nil {
		return nil, err
	}
	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	deltas := []inventory.StockDelta{{ItemID: it.ID, Delta: req.Quantity}}
	undo, err := s.apply(ctx, deltas, map[string]int{it.ID: it.CurrentStock})
	if err != nil {
		return nil, err
	}

	t, err := s.recorder.Append(ctx, &transaction.Transaction{
		Type:     transaction.TypeEntry,
		Date:     req.Date,
		ItemID:   it.ID,
		ItemName: it.Name,
		Quantity: req.Quantity,
		Detail:   req.Supplier,
	}, nil)
	if err != nil {
		return nil, s.compensate(ctx, "RecordEntry", undo, fmt.Errorf("record entry for %s: %w", it.Name, err))
	}
	return &Receipt{
		Transaction: t,
		Message:     fmt.Sprintf("Entry of %d units of %s recorded.", req.Quantity, it.Name),
	}, nil
}

// RecordBulkOutput validates every line before touching stock. The first failing line
// rejects the whole batch. Lines repeating an item are checked against their combined quantity.
func (s *service) RecordBulkOutput(ctx context.Context, req BulkOutputRequest) (*Receipt, error) {
	if len(req.Lines) == 0 {
		return nil, apperr.Invalid("at least one output line is required")
	}
	if strings.TrimSpace(req.Responsible) == "" {
		return nil, apperr.Invalid("responsible is required")
	}
	if err := checkDate(req.Date); err != nil {
		return nil, err
	}

	resolved := make(map[string]*inventory.Item, len(req.Lines))
	requested := make(map[string]int, len(req.Lines))
	var order []string
	for i, l := range req.Lines {
		if l.Quantity <= 0 {
			return nil, apperr.Invalid(fmt.Sprintf("line %d: quantity must be greater than zero", i+1))
		}
		it, ok := resolved[l.ItemID]
		if !ok {
			var err error
			if it, err = s.items.GetByID(ctx, l.ItemID); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			resolved[l.ItemID] = it
			order = append(order, l.ItemID)
		}
		requested[l.ItemID] += l.Quantity
		if requested[l.ItemID] > it.CurrentStock {
			return nil, &InsufficientStockError{
				ItemID:    it.ID,
				ItemName:  displayName(it),
				Available: it.CurrentStock,
				Requested: requested[l.ItemID],
			}
		}
	}

	projectID, detail, err := s.resolveProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	lines := make([]transaction.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		it := resolved[l.ItemID]
		name, brand := displayName(it), it.Brand
		if brand == "" {
			brand = UnknownBrandLabel
		}
		lines = append(lines, transaction.Line{ItemID: it.ID, ItemName: name, Brand: brand, Quantity: l.Quantity})
	}

	deltas := make([]inventory.StockDelta, 0, len(order))
	before := make(map[string]int, len(order))
	for _, id := range order {
		deltas = append(deltas, inventory.StockDelta{ItemID: id, Delta: -requested[id]})
		before[id] = resolved[id].CurrentStock
	}
	undo, err := s.apply(ctx, deltas, before)
	if err != nil {
		return nil, err
	}

	header := &transaction.Transaction{
		Type:        transaction.TypeOutput,
		Date:        req.Date,
		ItemName:    DispatchLabel(lines),
		Detail:      detail,
		ProjectID:   projectID,
		Responsible: req.Responsible,
	}
	if len(lines) == 1 {
		header.ItemID = lines[0].ItemID
	}
	t, err := s.recorder.Append(ctx, header, lines)
	if err != nil {
		return nil, s.compensate(ctx, "RecordBulkOutput", undo, fmt.Errorf("record dispatch: %w", err))
	}
	return &Receipt{
		Transaction: t,
		Message:     fmt.Sprintf("Dispatch of %d units to %s recorded.", t.Quantity, detail),
	}, nil
}

// resolveProject returns the project id to store and the detail label. An unknown project
// is not an error; the dispatch is labelled and left unassigned. A finished project is rejected.
func (s *service) resolveProject(ctx context.Context, id string) (string, string, error) {
	if id == "" || s.projects == nil {
		return "", UnknownProjectLabel, nil
	}
	p, err := s.projects.GetByID(ctx, id)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return "", UnknownProjectLabel, nil
	case err != nil:
		return "", "", err
	}
	if p.Status != project.StatusActive {
		return "", "", apperr.Invalid(fmt.Sprintf("project %s is finished and cannot receive dispatches", p.Name))
	}
	return p.ID, p.Name, nil
}

func displayName(it *inventory.Item) string {
	if it.Name == "" {
		return UnknownItemLabel
	}
	return it.Name
}

// checkDate accepts an empty date, which the recorder fills with today.
func checkDate(d string) error {
	if d == "" {
		return nil
	}
	if _, err := time.Parse(transaction.DateLayout, d); err != nil {
		return apperr.Invalid(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", d))
	}
	return nil
}

func (s *service) UpdateThreshold(ctx context.Context, itemID string, threshold int) (*inventory.Item, error) {
	if threshold <= 0 {
		return nil, apperr.Invalid("threshold must be greater than zero")
	}
	if err := s.items.Update(ctx, itemID, inventory.ItemPatch{LowStockThreshold: &threshold}); err != nil {
		return nil, err
	}
	return s.items.GetByID(ctx, itemID)
}

// apply writes deltas and returns the function that reverts them. before holds each item's
// stock as read during validation.
func (s *service) apply(ctx context.Context, deltas []inventory.StockDelta, before map[string]int) (func(context.Context) error, error) {
	if b, ok := s.items.(inventory.StockBatcher); ok {
		if err := b.ApplyStockDeltas(ctx, deltas); err != nil {
			return nil, err
		}
		return func(ctx context.Context) error {
			inverse := make([]inventory.StockDelta, len(deltas))
			for i, d := range deltas {
				inverse[i] = inventory.StockDelta{ItemID: d.ItemID, Delta: -d.Delta}
			}
			return b.ApplyStockDeltas(ctx, inverse)
		}, nil
	}

	var applied []string
	restore := func(ctx context.Context) error {
		var errs []error
		for i := len(applied) - 1; i >= 0; i-- {
			id := applied[i]
			if err := s.items.UpdateStock(ctx, id, before[id]); err != nil {
				errs = append(errs, fmt.Errorf("restore stock of %s: %w", id, err))
			}
		}
		return errors.Join(errs...)
	}
	for _, d := range deltas {
		if err := s.items.UpdateStock(ctx, d.ItemID, before[d.ItemID]+d.Delta); err != nil {
			if rerr := restore(ctx); rerr != nil {
				config.LogError(config.GetLogger(), "ledger", "apply", "restoring applied lines", applied, rerr)
				return nil, errors.Join(err, rerr)
			}
			return nil, err
		}
		applied = append(applied, d.ItemID)
	}
	return restore, nil
}

func (s *service) compensate(ctx context.Context, funcName string, undo func(context.Context) error, cause error) error {
	if err := undo(ctx); err != nil {
		config.LogError(config.GetLogger(), "ledger", funcName, "reverting stock after failed append", nil, err)
		return errors.Join(cause, err)
	}
	return cause
}
