package budgets

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/protrack-app/protrack/internal/costs"
	"github.com/protrack-app/protrack/internal/permission"
	"github.com/protrack-app/protrack/internal/platform/httpx"
	"github.com/protrack-app/protrack/internal/shared"
)

// Handler wires HTTP endpoints for project budgets. Reading a budget needs
// project access; editing a category allocation needs write access to that
// category's area.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers budget routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(permission.Require(permission.AreaProjects, permission.LevelRead))
		r.Get("/{projectID}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(permission.Require(permission.AreaProjects, permission.LevelWrite))
		r.Put("/{projectID}", h.update)
	})
	r.Patch("/{projectID}/{category}", h.updateCategory)
}

type budgetRequest struct {
	Material      float64 `json:"material_budget" validate:"gte=0"`
	Labor         float64 `json:"labor_budget" validate:"gte=0"`
	Equipment     float64 `json:"equipment_budget" validate:"gte=0"`
	Subcontractor float64 `json:"subcontractor_budget" validate:"gte=0"`
	Others        float64 `json:"others_budget" validate:"gte=0"`
	CapLeases     float64 `json:"cap_leases_budget" validate:"gte=0"`
	Consumable    float64 `json:"consumable_budget" validate:"gte=0"`
}

type categoryBudgetRequest struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathProjectID(w, r)
	if !ok {
		return
	}
	b, err := h.service.Get(r.Context(), id.TenantID, projectID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathProjectID(w, r)
	if !ok {
		return
	}
	var req budgetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	b, err := h.service.Update(r.Context(), Budget{
		TenantID:      id.TenantID,
		ProjectID:     projectID,
		Material:      req.Material,
		Labor:         req.Labor,
		Equipment:     req.Equipment,
		Subcontractor: req.Subcontractor,
		Others:        req.Others,
		CapLeases:     req.CapLeases,
		Consumable:    req.Consumable,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// updateCategory is gated by the category's own permission area, so a user
// with labor write access can set the labor budget without project write
// access.
func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	if id == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	projectID, ok := h.pathProjectID(w, r)
	if !ok {
		return
	}
	c, err := costs.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "unknown cost category")
		return
	}
	if !permission.Has(id, permission.Area(c), permission.LevelWrite) {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	var req categoryBudgetRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	b, err := h.service.UpdateCategory(r.Context(), id.TenantID, projectID, c, req.Amount)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

func (h *Handler) pathProjectID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid project id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidBudget):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error("budget operation", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
