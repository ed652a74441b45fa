package invoices

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/protrack-app/protrack/internal/permission"
	"github.com/protrack-app/protrack/internal/platform/httpx"
	"github.com/protrack-app/protrack/internal/shared"
)

// Handler wires HTTP endpoints for invoices.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers invoice routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(permission.Require(permission.AreaInvoices, permission.LevelRead))
		r.Get("/", h.list)
		r.Get("/{invoiceID}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(permission.Require(permission.AreaInvoices, permission.LevelWrite))
		r.Post("/", h.create)
		r.Put("/{invoiceID}", h.update)
		r.Delete("/{invoiceID}", h.remove)
	})
}

type invoiceRequest struct {
	ProjectID     *uuid.UUID `json:"project_id"`
	ChangeOrderID *uuid.UUID `json:"change_order_id"`
	InvoiceNumber string     `json:"invoice_number" validate:"required"`
	Amount        float64    `json:"amount" validate:"gte=0"`
	DateBilled    string     `json:"date_billed" validate:"required,datetime=2006-01-02"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, err := uuid.Parse(r.URL.Query().Get("project_id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "project_id is required")
		return
	}
	q := r.URL.Query()
	f := FilterSpec{
		StartDate:     q.Get("start_date"),
		EndDate:       q.Get("end_date"),
		InvoiceNumber: q.Get("invoice_number"),
		MinAmount:     parseFloat(q.Get("min_amount")),
		MaxAmount:     parseFloat(q.Get("max_amount")),
	}
	invoices, err := h.service.List(r.Context(), id.TenantID, projectID, q.Get("change_order"), f)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	// The billed total covers the whole filtered set, not just the page.
	totalBilled := TotalBilled(invoices)
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	pg := shared.NewPagination(page, perPage, len(invoices))
	start, end := pg.Bounds()
	httpx.JSON(w, http.StatusOK, map[string]any{
		"invoices":     invoices[start:end],
		"total_billed": totalBilled,
		"pagination":   pg,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	invoiceID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	inv, err := h.service.Get(r.Context(), id.TenantID, invoiceID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	inv, err := h.service.Create(r.Context(), Invoice{
		TenantID:      id.TenantID,
		ProjectID:     req.ProjectID,
		ChangeOrderID: req.ChangeOrderID,
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
		DateBilled:    req.DateBilled,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	invoiceID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	inv, err := h.service.Update(r.Context(), Invoice{
		ID:            invoiceID,
		TenantID:      id.TenantID,
		ProjectID:     req.ProjectID,
		ChangeOrderID: req.ChangeOrderID,
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.Amount,
		DateBilled:    req.DateBilled,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	invoiceID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id.TenantID, invoiceID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (invoiceRequest, bool) {
	var req invoiceRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return req, false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "invoiceID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid invoice id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.RespondError(w, httpx.ErrNotFound)
	case errors.Is(err, ErrInvalidInvoice):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error("invoice operation", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
