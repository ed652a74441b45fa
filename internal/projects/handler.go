package projects

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

// Handler wires HTTP endpoints for project management.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers project routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(permission.Require(permission.AreaProjects, permission.LevelRead))
		r.Get("/", h.list)
		r.Get("/{projectID}", h.get)
		r.Get("/{projectID}/grand-total", h.grandTotal)
		r.Get("/{projectID}/change-orders", h.listChangeOrders)
	})
	r.Group(func(r chi.Router) {
		r.Use(permission.Require(permission.AreaProjects, permission.LevelWrite))
		r.Post("/", h.create)
		r.Put("/{projectID}", h.update)
		r.Patch("/{projectID}/status", h.updateStatus)
		r.Delete("/{projectID}", h.remove)
		r.Post("/{projectID}/change-orders", h.createChangeOrder)
		r.Put("/{projectID}/change-orders/{changeOrderID}", h.updateChangeOrder)
		r.Delete("/{projectID}/change-orders/{changeOrderID}", h.removeChangeOrder)
	})
}

type projectRequest struct {
	JobNumber          string  `json:"job_number" validate:"required"`
	JobName            string  `json:"job_name" validate:"required"`
	Customer           string  `json:"customer"`
	FieldShopBoth      string  `json:"field_shop_both" validate:"omitempty,oneof=Field Shop Both"`
	TotalContractValue float64 `json:"total_contract_value" validate:"gte=0"`
	Status             string  `json:"status" validate:"omitempty,oneof=Active Inactive Completed 'On Hold'"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type changeOrderRequest struct {
	Name                    string  `json:"name" validate:"required"`
	Description             string  `json:"description"`
	AdditionalContractValue float64 `json:"additional_contract_value" validate:"gte=0"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projects, err := h.service.List(r.Context(), id.TenantID)
	if err != nil {
		h.logger.Error("list projects", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	pg := shared.NewPagination(page, perPage, len(projects))
	start, end := pg.Bounds()
	httpx.JSON(w, http.StatusOK, map[string]any{
		"projects":   projects[start:end],
		"pagination": pg,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathID(w, r, "projectID")
	if !ok {
		return
	}
	p, err := h.service.Get(r.Context(), id.TenantID, projectID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) grandTotal(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathID(w, r, "projectID")
	if !ok {
		return
	}
	total, err := h.service.GrandTotal(r.Context(), id.TenantID, projectID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"grand_total_contract_value": total})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	req, ok := h.decodeProject(w, r)
	if !ok {
		return
	}
	p, err := h.service.Create(r.Context(), Project{
		TenantID:           id.TenantID,
		JobNumber:          req.JobNumber,
		JobName:            req.JobName,
		Customer:           req.Customer,
		FieldShopBoth:      Location(req.FieldShopBoth),
		TotalContractValue: req.TotalContractValue,
		Status:             Status(req.Status),
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathID(w, r, "projectID")
	if !ok {
		return
	}
	req, ok := h.decodeProject(w, r)
	if !ok {
		return
	}
	status := Status(req.Status)
	if status == "" {
		status = StatusActive
	}
	p, err := h.service.Update(r.Context(), Project{
		ID:                 projectID,
		TenantID:           id.TenantID,
		JobNumber:          req.JobNumber,
		JobName:            req.JobName,
		Customer:           req.Customer,
		FieldShopBoth:      Location(req.FieldShopBoth),
		TotalContractValue: req.TotalContractValue,
		Status:             status,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathID(w, r, "projectID")
	if !ok {
		return
	}
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p, err := h.service.UpdateStatus(r.Context(), id.TenantID, projectID, Status(req.Status))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathID(w, r, "projectID")
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id.TenantID, projectID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listChangeOrders(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathID(w, r, "projectID")
	if !ok {
		return
	}
	orders, err := h.service.ListChangeOrders(r.Context(), id.TenantID, projectID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"change_orders": orders})
}

func (h *Handler) createChangeOrder(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathID(w, r, "projectID")
	if !ok {
		return
	}
	req, ok := h.decodeChangeOrder(w, r)
	if !ok {
		return
	}
	co, err := h.service.CreateChangeOrder(r.Context(), ChangeOrder{
		TenantID:                id.TenantID,
		ProjectID:               projectID,
		Name:                    req.Name,
		Description:             req.Description,
		AdditionalContractValue: req.AdditionalContractValue,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, co)
}

func (h *Handler) updateChangeOrder(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathID(w, r, "projectID")
	if !ok {
		return
	}
	changeOrderID, ok := h.pathID(w, r, "changeOrderID")
	if !ok {
		return
	}
	req, ok := h.decodeChangeOrder(w, r)
	if !ok {
		return
	}
	co, err := h.service.UpdateChangeOrder(r.Context(), ChangeOrder{
		ID:                      changeOrderID,
		TenantID:                id.TenantID,
		ProjectID:               projectID,
		Name:                    req.Name,
		Description:             req.Description,
		AdditionalContractValue: req.AdditionalContractValue,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, co)
}

func (h *Handler) removeChangeOrder(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	changeOrderID, ok := h.pathID(w, r, "changeOrderID")
	if !ok {
		return
	}
	if err := h.service.DeleteChangeOrder(r.Context(), id.TenantID, changeOrderID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeProject(w http.ResponseWriter, r *http.Request) (projectRequest, bool) {
	var req projectRequest
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

func (h *Handler) decodeChangeOrder(w http.ResponseWriter, r *http.Request) (changeOrderRequest, bool) {
	var req changeOrderRequest
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

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.RespondError(w, httpx.ErrNotFound)
	case errors.Is(err, ErrDuplicateJob):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrInvalidProject):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error("project operation", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
