package employees

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/protrack-app/protrack/internal/permission"
	"github.com/protrack-app/protrack/internal/platform/httpx"
	"github.com/protrack-app/protrack/internal/shared"
)

// Handler wires HTTP endpoints for the labor roster. The roster is gated by
// the labor area because it feeds labor entry rates.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers roster routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(permission.Require(permission.AreaLabor, permission.LevelRead))
		r.Get("/", h.list)
		r.Get("/{employeeID}", h.get)
	})
	r.Group(func(r chi.Router) {
		r.Use(permission.Require(permission.AreaLabor, permission.LevelWrite))
		r.Post("/", h.create)
		r.Put("/{employeeID}", h.update)
		r.Delete("/{employeeID}", h.remove)
	})
}

type employeeRequest struct {
	Name     string  `json:"name" validate:"required"`
	StRate   float64 `json:"st_rate" validate:"gte=0"`
	OtRate   float64 `json:"ot_rate" validate:"gte=0"`
	DtRate   float64 `json:"dt_rate" validate:"gte=0"`
	PerDiem  float64 `json:"per_diem" validate:"gte=0"`
	MobRate  float64 `json:"mob_rate" validate:"gte=0"`
	IsActive *bool   `json:"is_active"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	employees, err := h.service.List(r.Context(), id.TenantID)
	if err != nil {
		h.logger.Error("list employees", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"employees": employees})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	employeeID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	e, err := h.service.Get(r.Context(), id.TenantID, employeeID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	e, err := h.service.Create(r.Context(), Employee{
		TenantID: id.TenantID,
		Name:     req.Name,
		StRate:   req.StRate,
		OtRate:   req.OtRate,
		DtRate:   req.DtRate,
		PerDiem:  req.PerDiem,
		MobRate:  req.MobRate,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, e)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	employeeID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	e, err := h.service.Update(r.Context(), Employee{
		ID:       employeeID,
		TenantID: id.TenantID,
		Name:     req.Name,
		StRate:   req.StRate,
		OtRate:   req.OtRate,
		DtRate:   req.DtRate,
		PerDiem:  req.PerDiem,
		MobRate:  req.MobRate,
		IsActive: active,
	})
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	employeeID, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id.TenantID, employeeID); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (employeeRequest, bool) {
	var req employeeRequest
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
	id, err := uuid.Parse(chi.URLParam(r, "employeeID"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid employee id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.RespondError(w, httpx.ErrNotFound)
	case errors.Is(err, ErrInvalidEmployee):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error("employee operation", slog.Any("error", err))
		httpx.RespondError(w, err)
	}
}
