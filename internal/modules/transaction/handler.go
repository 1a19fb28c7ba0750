package transaction

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/jfsolar-inventory/internal/httpx"
)

// Handler exposes the transaction history.
type Handler struct{ recorder Recorder }

func NewHandler(recorder Recorder) *Handler { return &Handler{recorder: recorder} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/transactions", func(r chi.Router) {
		r.Get("/", h.list) // ?search=...&from=...&to=...&project_id=...
		r.Post("/import", h.importBatch)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	txs, err := h.recorder.Search(r.Context(), HistoryFilter{
		Search:    q.Get("search"),
		From:      q.Get("from"),
		To:        q.Get("to"),
		ProjectID: q.Get("project_id"),
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, txs)
}

func (h *Handler) importBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Transactions []*Transaction `json:"transactions" validate:"required,dive,required"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, err)
		return
	}
	res, err := h.recorder.Import(r.Context(), body.Transactions)
	if err != nil {
		if res != nil {
			httpx.ErrorWith(w, err, res)
			return
		}
		httpx.Error(w, err)
		return
	}
	httpx.Message(w, http.StatusOK,
		fmt.Sprintf("History updated: %d appended, %d duplicates skipped.", res.Appended, res.Skipped), res)
}
