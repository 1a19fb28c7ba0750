package category

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/jfsolar-inventory/internal/httpx"
)

type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Put("/{name}", h.rename)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.List(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, names)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name" validate:"required"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, err)
		return
	}
	created, err := h.service.Create(r.Context(), body.Name)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if !created {
		httpx.Message(w, http.StatusOK, fmt.Sprintf("Category %q already exists.", body.Name), nil)
		return
	}
	httpx.Message(w, http.StatusCreated, fmt.Sprintf("Category %q created.", body.Name), nil)
}

func (h *Handler) rename(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name" validate:"required"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, err)
		return
	}
	oldName := chi.URLParam(r, "name")
	moved, err := h.service.Rename(r.Context(), oldName, body.Name)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Message(w, http.StatusOK,
		fmt.Sprintf("Category %q renamed to %q; %d products moved.", oldName, body.Name, moved), nil)
}
