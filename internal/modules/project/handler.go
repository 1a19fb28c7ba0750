package project

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/jfsolar-inventory/internal/httpx"
)

// Handler exposes project HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/projects", func(r chi.Router) {
		r.Get("/", h.listProjects) // ?search=...&status=active|finished
		r.Post("/", h.createProject)
		r.Get("/{id}", h.report)
		r.Post("/{id}/toggle", h.toggleStatus)
	})
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	projects, err := h.service.ListProjects(r.Context(), ListFilter{
		Search: q.Get("search"),
		Status: Status(q.Get("status")),
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, projects)
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name" validate:"required"`
	}
	if err := httpx.Decode(r, &body); err != nil {
		httpx.Error(w, err)
		return
	}
	p, err := h.service.CreateProject(r.Context(), body.Name)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Message(w, http.StatusCreated, fmt.Sprintf("Project %q created.", p.Name), p)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	rep, err := h.service.Report(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, rep)
}

func (h *Handler) toggleStatus(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, fmt.Sprintf("Project %q is now %s.", p.Name, p.Status), p)
}
