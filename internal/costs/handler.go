package costs

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

// Handler wires HTTP endpoints for cost entries. All routes are scoped by a
// {category} URL parameter, which doubles as the permission area.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers cost routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/{category}", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Route("/{entryID}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Put("/", h.update)
			r.Delete("/", h.remove)
		})
	})
}

// authorize resolves the category from the URL and enforces the matching
// permission area at the requested level.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, level permission.Level) (Category, *shared.Identity, bool) {
	c, err := ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "unknown cost category")
		return "", nil, false
	}
	id := shared.IdentityFromContext(r.Context())
	if id == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return "", nil, false
	}
	if !permission.Has(id, permission.Area(c), level) {
		httpx.RespondError(w, httpx.ErrForbidden)
		return "", nil, false
	}
	return c, id, true
}

type entryRequest struct {
	ProjectID     *uuid.UUID `json:"project_id"`
	ChangeOrderID *uuid.UUID `json:"change_order_id"`
	Date          string     `json:"date" validate:"required,datetime=2006-01-02"`
	InSystem      bool       `json:"in_system"`

	Vendor        string  `json:"vendor"`
	InvoiceNumber string  `json:"invoice_number"`
	Cost          float64 `json:"cost" validate:"gte=0"`

	Description       string `json:"description"`
	SubcontractorName string `json:"subcontractor_name"`

	EmployeeID   *uuid.UUID `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	StHours      float64    `json:"st_hours" validate:"gte=0"`
	StRate       float64    `json:"st_rate" validate:"gte=0"`
	OtHours      float64    `json:"ot_hours" validate:"gte=0"`
	OtRate       float64    `json:"ot_rate" validate:"gte=0"`
	DtHours      float64    `json:"dt_hours" validate:"gte=0"`
	DtRate       float64    `json:"dt_rate" validate:"gte=0"`
	PerDiem      float64    `json:"per_diem" validate:"gte=0"`
	MobQty       float64    `json:"mob_qty" validate:"gte=0"`
	MobRate      float64    `json:"mob_rate" validate:"gte=0"`
}

func (req entryRequest) toEntry(tenantID uuid.UUID) Entry {
	return Entry{
		TenantID:          tenantID,
		ProjectID:         req.ProjectID,
		ChangeOrderID:     req.ChangeOrderID,
		Date:              req.Date,
		InSystem:          req.InSystem,
		Vendor:            req.Vendor,
		InvoiceNumber:     req.InvoiceNumber,
		Cost:              req.Cost,
		Description:       req.Description,
		SubcontractorName: req.SubcontractorName,
		EmployeeID:        req.EmployeeID,
		EmployeeName:      req.EmployeeName,
		StHours:           req.StHours,
		StRate:            req.StRate,
		OtHours:           req.OtHours,
		OtRate:            req.OtRate,
		DtHours:           req.DtHours,
		DtRate:            req.DtRate,
		PerDiem:           req.PerDiem,
		MobQty:            req.MobQty,
		MobRate:           req.MobRate,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	c, id, ok := h.authorize(w, r, permission.LevelRead)
	if !ok {
		return
	}
	projectID, err := uuid.Parse(r.URL.Query().Get("project_id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "project_id is required")
		return
	}
	q := r.URL.Query()
	entries, err := h.service.List(r.Context(), id.TenantID, projectID, c,
		q.Get("change_order"), ParseFilterQuery(q))
	if err != nil {
		h.logger.Error("list cost entries", slog.String("category", string(c)), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	// The total covers the whole filtered ledger, not just the page.
	total := Total(entries, c)
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	pg := shared.NewPagination(page, perPage, len(entries))
	start, end := pg.Bounds()
	httpx.JSON(w, http.StatusOK, map[string]any{
		"entries":    entries[start:end],
		"total":      total,
		"pagination": pg,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, id, ok := h.authorize(w, r, permission.LevelRead)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid entry id")
		return
	}
	entry, err := h.service.Get(r.Context(), id.TenantID, entryID, c)
	if err != nil {
		h.respondServiceError(w, c, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	c, id, ok := h.authorize(w, r, permission.LevelWrite)
	if !ok {
		return
	}
	var req entryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	entry, err := h.service.Create(r.Context(), c, req.toEntry(id.TenantID))
	if err != nil {
		h.respondServiceError(w, c, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	c, id, ok := h.authorize(w, r, permission.LevelWrite)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid entry id")
		return
	}
	var req entryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	entry := req.toEntry(id.TenantID)
	entry.ID = entryID
	updated, err := h.service.Update(r.Context(), c, entry)
	if err != nil {
		h.respondServiceError(w, c, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	c, id, ok := h.authorize(w, r, permission.LevelWrite)
	if !ok {
		return
	}
	entryID, err := uuid.Parse(chi.URLParam(r, "entryID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid entry id")
		return
	}
	if err := h.service.Delete(r.Context(), id.TenantID, entryID, c); err != nil {
		h.respondServiceError(w, c, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, c Category, err error) {
	switch {
	case errors.Is(err, ErrEntryNotFound):
		httpx.RespondError(w, httpx.ErrNotFound)
	case errors.Is(err, ErrInvalidEntry):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error("cost entry operation", slog.String("category", string(c)), slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}

// ParseFilterQuery builds a FilterSpec from request query parameters. Absent
// or unparseable values leave the predicate inactive.
func ParseFilterQuery(q map[string][]string) FilterSpec {
	get := func(key string) string {
		if vs := q[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}
	return FilterSpec{
		StartDate:         get("start_date"),
		EndDate:           get("end_date"),
		Vendor:            get("vendor"),
		MinCost:           parseFloat(get("min_cost")),
		MaxCost:           parseFloat(get("max_cost")),
		InSystem:          get("in_system"),
		EmployeeName:      get("employee_name"),
		MinHours:          parseFloat(get("min_hours")),
		MaxHours:          parseFloat(get("max_hours")),
		SubcontractorName: get("subcontractor_name"),
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
