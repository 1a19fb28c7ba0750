package ledger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/jfsolar-inventory/internal/config"
	"github.com/georgemunganga/jfsolar-inventory/internal/httpx"
)

// ViewRefresher re-reads the read-side snapshot.
type ViewRefresher interface {
	Refresh(ctx context.Context) error
}

// Handler exposes the stock mutation endpoints.
type Handler struct {
	service Service
	view    ViewRefresher
}

// NewHandler creates a ledger handler. view may be nil.
func NewHandler(service Service, view ViewRefresher) *Handler {
	return &Handler{service: service, view: view}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/ledger", func(r chi.Router) {
		r.Post("/entries", h.recordEntry)
		r.Post("/outputs", h.recordBulkOutput)
		r.Put("/thresholds/{id}", h.updateThreshold)
	})
}

// refresh runs after every attempt, successful or not, so readers see the stored state.
func (h *Handler) refresh(ctx context.Context) {
	if h.view == nil {
		return
	}
	if err := h.view.Refresh(ctx); err != nil {
		config.LogError(config.GetLogger(), "ledger", "refresh", "refreshing snapshot", nil, err)
	}
}

func (h *Handler) recordEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	receipt, err := h.service.RecordEntry(r.Context(), req)
	h.refresh(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Message(w, http.StatusCreated, receipt.Message, receipt.Transaction)
}

func (h *Handler) recordBulkOutput(w http.ResponseWriter, r *http.Request) {
	var req BulkOutputRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	receipt, err := h.service.RecordBulkOutput(r.Context(), req)
	h.refresh(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Message(w, http.StatusCreated, receipt.Message, receipt.Transaction)
}

func (h *Handler) updateThreshold(w http.ResponseWriter, r *http.Request) {
	var req ThresholdRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	it, err := h.service.UpdateThreshold(r.Context(), chi.URLParam(r, "id"), req.Threshold)
	h.refresh(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, fmt.Sprintf("Threshold of %s set to %d.", it.Name, it.LowStockThreshold), it)
}
