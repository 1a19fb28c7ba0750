package project

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
	"github.com/georgemunganga/jfsolar-inventory/internal/modules/transaction"
)

type mockRepo struct {
	mu       sync.Mutex
	projects []*Project
}

func (m *mockRepo) GetAll(ctx context.Context) ([]*Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Project, len(m.projects))
	for i, p := range m.projects {
		cp := *p
		out[i] = &cp
	}
	return out, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.projects {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("project", id)
}

func (m *mockRepo) Create(ctx context.Context, p *Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.projects = append(m.projects, &cp)
	return nil
}

func (m *mockRepo) UpdateStatus(ctx context.Context, id string, status Status, finishedAt string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.projects {
		if p.ID == id {
			p.Status = status
			p.FinishedAt = finishedAt
			return nil
		}
	}
	return apperr.NotFound("project", id)
}

type stubRecorder struct {
	transaction.Recorder
	byProject map[string][]*transaction.Transaction
}

func (s *stubRecorder) ListByProject(ctx context.Context, projectID string) ([]*transaction.Transaction, error) {
	return s.byProject[projectID], nil
}

func newTestService(repo Repository, rec transaction.Recorder) *service {
	return &service{repo: repo, recorder: rec, now: func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}}
}

func TestCreateProject(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo, &stubRecorder{})

	p, err := svc.CreateProject(context.Background(), "  Finca El Sol ")
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if p.Name != "Finca El Sol" || p.Status != StatusActive || p.CreatedAt != "2025-06-01" {
		t.Errorf("unexpected project: %+v", p)
	}
	if _, err := svc.CreateProject(context.Background(), ""); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestToggleStatus(t *testing.T) {
	repo := &mockRepo{projects: []*Project{{ID: "p1", Name: "Casa", Status: StatusActive, CreatedAt: "2025-01-01"}}}
	svc := newTestService(repo, &stubRecorder{})
	ctx := context.Background()

	p, err := svc.ToggleStatus(ctx, "p1")
	if err != nil {
		t.Fatalf("ToggleStatus failed: %v", err)
	}
	if p.Status != StatusFinished || p.FinishedAt != "2025-06-01" {
		t.Errorf("expected finished on 2025-06-01, got %+v", p)
	}

	p, err = svc.ToggleStatus(ctx, "p1")
	if err != nil {
		t.Fatalf("ToggleStatus failed: %v", err)
	}
	if p.Status != StatusActive || p.FinishedAt != "" {
		t.Errorf("expected reopened project, got %+v", p)
	}

	if _, err := svc.ToggleStatus(ctx, "ghost"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListProjects_Filter(t *testing.T) {
	repo := &mockRepo{projects: []*Project{
		{ID: "1", Name: "Casa Norte", Status: StatusActive, CreatedAt: "2025-01-01"},
		{ID: "2", Name: "Bodega Sur", Status: StatusFinished, CreatedAt: "2025-02-01"},
		{ID: "3", Name: "Casa Sur", Status: StatusActive, CreatedAt: "2025-03-01"},
	}}
	svc := newTestService(repo, &stubRecorder{})
	ctx := context.Background()

	active, _ := svc.ListProjects(ctx, ListFilter{Status: StatusActive})
	if len(active) != 2 || active[0].ID != "3" {
		t.Errorf("expected 2 active projects newest first, got %+v", active)
	}
	sur, _ := svc.ListProjects(ctx, ListFilter{Search: "sur"})
	if len(sur) != 2 {
		t.Errorf("expected 2 projects matching 'sur', got %d", len(sur))
	}
	if _, err := svc.ListProjects(ctx, ListFilter{Status: "paused"}); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestReport(t *testing.T) {
	repo := &mockRepo{projects: []*Project{{ID: "p1", Name: "Casa", Status: StatusActive}}}
	rec := &stubRecorder{byProject: map[string][]*transaction.Transaction{
		"p1": {
			{ID: "t1", Type: transaction.TypeOutput, Date: "2025-05-02", ItemName: "multi-item dispatch of 2 products", Quantity: 10, Responsible: "Luis",
				Items: []transaction.Line{{ItemName: "Panel", Brand: "Jinko", Quantity: 4}, {ItemName: "Cable", Brand: "S/M", Quantity: 6}}},
			{ID: "t2", Type: transaction.TypeOutput, Date: "2025-05-01", ItemName: "Inversor", Quantity: 1},
		},
	}}
	svc := newTestService(repo, rec)

	r, err := svc.Report(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if r.TotalUnits != 11 || r.TransactionCount != 2 {
		t.Errorf("expected 11 units over 2 transactions, got %d / %d", r.TotalUnits, r.TransactionCount)
	}
	rows := r.Rows()
	if len(rows) != 3 {
		t.Fatalf("expected 3 report rows, got %d", len(rows))
	}
	if rows[2].Brand != "S/M" || rows[2].Responsible != "No asignado" {
		t.Errorf("unexpected single-item row: %+v", rows[2])
	}
	if rows[0].Responsible != "Luis" || rows[1].Material != "Cable" {
		t.Errorf("unexpected line rows: %+v", rows[:2])
	}
}

func TestImportProjects_KeepsIDsAndSkipsKnown(t *testing.T) {
	repo := &mockRepo{projects: []*Project{{ID: "p1", Name: "Finca El Sol", Status: StatusActive, CreatedAt: "2025-01-01"}}}
	svc := newTestService(repo, &stubRecorder{})

	res, err := svc.ImportProjects(context.Background(), []*Project{
		{ID: "p1", Name: "Finca El Sol"},
		{ID: "p2", Name: "Hacienda Vieja", Status: StatusFinished, CreatedAt: "2024-11-02", FinishedAt: "2025-02-10"},
		{ID: "p2", Name: "Hacienda Vieja"},
		{ID: "p3", Name: "Colegio Rural"},
		{ID: "p4", Name: "  "},
	})
	if err != nil {
		t.Fatalf("ImportProjects failed: %v", err)
	}
	if res.Created != 2 || res.Skipped != 3 {
		t.Errorf("expected 2 created / 3 skipped, got %+v", res)
	}

	p2, err := repo.GetByID(context.Background(), "p2")
	if err != nil || p2.Status != StatusFinished || p2.FinishedAt != "2025-02-10" {
		t.Errorf("expected p2 kept as finished, got %+v (%v)", p2, err)
	}
	p3, err := repo.GetByID(context.Background(), "p3")
	if err != nil || p3.Status != StatusActive || p3.CreatedAt != "2025-06-01" {
		t.Errorf("expected p3 defaulted to active today, got %+v (%v)", p3, err)
	}
}
