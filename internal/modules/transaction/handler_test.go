package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// rejectingRepo fails every write for one transaction id.
type rejectingRepo struct {
	*mockRepo
	rejectID string
}

func (r *rejectingRepo) CreateWithLines(ctx context.Context, t *Transaction, lines []Line) error {
	if t.ID == r.rejectID {
		return errors.New("disk full")
	}
	return r.mockRepo.CreateWithLines(ctx, t, lines)
}

func (r *rejectingRepo) Create(ctx context.Context, t *Transaction) error {
	return r.CreateWithLines(ctx, t, nil)
}

func newImportRouter(repo Repository) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	NewHandler(fixedRecorder(repo)).RegisterRoutes(r)
	return r
}

func TestHandler_ImportRejectsNullEntry(t *testing.T) {
	repo := &mockRepo{}
	router := newImportRouter(repo)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/transactions/import",
		strings.NewReader(`{"transactions":[null]}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(repo.txs) != 0 {
		t.Errorf("expected nothing stored, got %d", len(repo.txs))
	}
}

func TestHandler_ImportReportsPartialResult(t *testing.T) {
	repo := &rejectingRepo{mockRepo: &mockRepo{}, rejectID: "t2"}
	router := newImportRouter(repo)

	body := `{"transactions":[
		{"id":"t1","type":"entry","date":"2025-01-01","quantity":5},
		{"id":"t2","type":"entry","date":"2025-01-02","quantity":3},
		{"id":"t3","type":"entry","date":"2025-01-03","quantity":1}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/transactions/import", strings.NewReader(body)))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Error string       `json:"error"`
		Data  ImportResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Appended != 1 || !strings.Contains(resp.Error, "t2") {
		t.Errorf("expected 1 appended and an error naming t2, got %+v", resp)
	}
}
