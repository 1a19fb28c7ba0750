package dataexchange

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/georgemunganga/jfsolar-inventory/internal/apperr"
	"github.com/georgemunganga/jfsolar-inventory/internal/config"
	"github.com/georgemunganga/jfsolar-inventory/internal/httpx"
)

const maxUploadSize = 10 << 20

// ViewRefresher re-reads the read-side snapshot after an import.
type ViewRefresher interface {
	Refresh(ctx context.Context) error
}

type Handler struct {
	service Service
	view    ViewRefresher
}

// NewHandler creates the spreadsheet handler. view may be nil.
func NewHandler(service Service, view ViewRefresher) *Handler {
	return &Handler{service: service, view: view}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/data", func(r chi.Router) {
		r.Get("/inventory.xlsx", h.exportInventory)
		r.Post("/inventory", h.importInventory)
		r.Get("/history.xlsx", h.exportHistory)
		r.Post("/history", h.importHistory)
		r.Get("/projects/{id}/report.xlsx", h.exportProjectReport)
		r.Post("/migrate", h.migrate)
	})
}

// sendWorkbook writes a buffered workbook as an attachment. Workbooks are buffered so a
// failed export can still produce an error response.
func sendWorkbook(w http.ResponseWriter, filename string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", ContentTypeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) exportInventory(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.ExportInventory(r.Context(), &buf); err != nil {
		httpx.Error(w, err)
		return
	}
	sendWorkbook(w, "inventario.xlsx", &buf)
}

func (h *Handler) exportHistory(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.ExportHistory(r.Context(), &buf); err != nil {
		httpx.Error(w, err)
		return
	}
	sendWorkbook(w, "historial.xlsx", &buf)
}

func (h *Handler) exportProjectReport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	p, err := h.service.ExportProjectReport(r.Context(), chi.URLParam(r, "id"), &buf)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	sendWorkbook(w, "reporte_"+strings.ReplaceAll(strings.ToLower(p.Name), " ", "_")+".xlsx", &buf)
}

func (h *Handler) importInventory(w http.ResponseWriter, r *http.Request) {
	file, err := uploadedFile(w, r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	defer file.Close()

	res, err := h.service.ImportInventory(r.Context(), file)
	h.refresh(r.Context())
	if err != nil {
		if res != nil {
			httpx.ErrorWith(w, classify(err), res)
			return
		}
		httpx.Error(w, classify(err))
		return
	}
	msg := fmt.Sprintf("Inventory loaded: %d items.", res.Created)
	if res.Skipped > 0 {
		msg = fmt.Sprintf("Inventory loaded: %d items (%d duplicates skipped).", res.Created, res.Skipped)
	}
	httpx.Message(w, http.StatusOK, msg, res)
}

func (h *Handler) importHistory(w http.ResponseWriter, r *http.Request) {
	file, err := uploadedFile(w, r)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	defer file.Close()

	res, err := h.service.ImportHistory(r.Context(), file)
	h.refresh(r.Context())
	if err != nil {
		if res != nil {
			httpx.ErrorWith(w, classify(err), res)
			return
		}
		httpx.Error(w, classify(err))
		return
	}
	httpx.Message(w, http.StatusOK,
		fmt.Sprintf("History processed: %d records added, %d already present.", res.Appended, res.Skipped), res)
}

func (h *Handler) migrate(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.Migrate(r.Context())
	h.refresh(r.Context())
	if err != nil {
		if res != nil {
			httpx.ErrorWith(w, classify(err), res)
			return
		}
		httpx.Error(w, classify(err))
		return
	}
	httpx.Message(w, http.StatusOK, fmt.Sprintf(
		"Migration finished: %d categories, %d items, %d projects and %d transactions copied.",
		res.CategoriesCreated, res.Items.Created, res.Projects.Created, res.Transactions.Appended), res)
}

func uploadedFile(w http.ResponseWriter, r *http.Request) (multipart.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, apperr.Invalid("a workbook must be uploaded in the \"file\" form field: " + err.Error())
	}
	return file, nil
}

// classify reports unreadable or empty workbooks as bad input and a missing fallback
// snapshot as not found.
func classify(err error) error {
	if errors.Is(err, ErrEmptyFile) || errors.Is(err, ErrNoValidRows) || errors.Is(err, ErrUnreadable) {
		return apperr.Invalid(err.Error())
	}
	if errors.Is(err, ErrNothingToMigrate) {
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	}
	return err
}

func (h *Handler) refresh(ctx context.Context) {
	if h.view == nil {
		return
	}
	if err := h.view.Refresh(ctx); err != nil {
		config.LogError(config.GetLogger(), "dataexchange", "refresh", "refreshing snapshot", nil, err)
	}
}
