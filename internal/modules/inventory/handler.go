package inventory

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/jfsolar-inventory/internal/httpx"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/items", func(r chi.Router) {
		r.Get("/", h.listItems) // ?search=...&category=...
		r.Post("/", h.createItem)
		r.Get("/low-stock", h.lowStock)
		r.Post("/category", h.assignCategory)
		r.Get("/{id}", h.getItem)
		r.Patch("/{id}", h.updateItem)
	})
}

type itemView struct {
	*Item
	Status StockStatus `json:"status"`
}

func view(items []*Item) []itemView {
	out := make([]itemView, 0, len(items))
	for _, it := range items {
		out = append(out, itemView{Item: it, Status: it.Status()})
	}
	return out
}

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.service.ListItems(r.Context(), ListFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, view(items))
}

func (h *Handler) createItem(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, err)
		return
	}
	it, err := h.service.CreateItem(r.Context(), req)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Message(w, http.StatusCreated, fmt.Sprintf("Item %q added.", it.Name), it)
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.service.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, itemView{Item: it, Status: it.Status()})
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var patch ItemPatch
	if err := httpx.Decode(r, &patch); err != nil {
		httpx.Error(w, err)
		return
	}
	it, err := h.service.UpdateItem(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, fmt.Sprintf("Product %q updated.", it.Name), it)
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.LowStock(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, view(items))
}

func (h *Handler) assignCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ItemIDs  []string `json:"item_ids" validate:"required,min=1"`
		Category string   `json:"category" validate:"required"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, err)
		return
	}
	if err := h.service.AssignCategory(r.Context(), body.ItemIDs, body.Category); err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Message(w, http.StatusOK,
		fmt.Sprintf("Category %q assigned to %d products.", body.Category, len(body.ItemIDs)), nil)
}
