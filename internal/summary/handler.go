package summary

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/protrack-app/protrack/internal/costs"
	"github.com/protrack-app/protrack/internal/permission"
	"github.com/protrack-app/protrack/internal/platform/httpx"
	"github.com/protrack-app/protrack/internal/projects"
	"github.com/protrack-app/protrack/internal/shared"
	"github.com/protrack-app/protrack/internal/summary/export"
)

// Handler wires HTTP endpoints for rollups and exports.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers summary routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(permission.Require(permission.AreaProjects, permission.LevelRead))
		r.Get("/{projectID}", h.totals)
		r.Get("/{projectID}/report", h.report)
		r.Get("/{projectID}/export.csv", h.summaryCSV)
	})
	r.Get("/{projectID}/export/{category}.csv", h.categoryCSV)
}

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathProjectID(w, r)
	if !ok {
		return
	}
	t, err := h.service.Totals(r.Context(), id.TenantID, projectID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathProjectID(w, r)
	if !ok {
		return
	}
	rep, err := h.service.Report(r.Context(), id.TenantID, projectID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := export.WritePerformanceReport(w, toSummaryData(rep)); err != nil {
		h.logger.Error("write performance report", slog.Any("error", err))
	}
}

func (h *Handler) summaryCSV(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	projectID, ok := h.pathProjectID(w, r)
	if !ok {
		return
	}
	rep, err := h.service.Report(r.Context(), id.TenantID, projectID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="summary-`+rep.Project.JobNumber+`.csv"`)
	if err := export.WriteSummaryCSV(w, toSummaryData(rep)); err != nil {
		h.logger.Error("write summary csv", slog.Any("error", err))
	}
}

// categoryCSV exports one category's filtered ledger. It is gated by that
// category's permission area rather than project access.
func (h *Handler) categoryCSV(w http.ResponseWriter, r *http.Request) {
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
	if !permission.Has(id, permission.Area(c), permission.LevelRead) {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}

	entries, err := h.service.entries.ListByProject(r.Context(), id.TenantID, projectID, c)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	f := costs.ParseFilterQuery(r.URL.Query())
	entries = costs.VisibleEntries(entries, projectID)
	entries = costs.PartitionByChangeOrder(entries, r.URL.Query().Get("change_order"))
	entries = costs.ApplyFilters(entries, c, f)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(c)+`.csv"`)
	if err := export.WriteCategoryCSV(w, c, entries, f); err != nil {
		h.logger.Error("write category csv", slog.String("category", string(c)), slog.Any("error", err))
	}
}

func toSummaryData(rep *Report) export.SummaryData {
	lines := make([]export.CategoryLine, 0, len(costs.Categories()))
	for _, c := range costs.Categories() {
		lines = append(lines, export.CategoryLine{
			Category: c,
			Label:    costs.Describe(c).Label,
			Total:    rep.Totals.Categories[c],
			Budget:   rep.Totals.Budgets[c],
			Variance: rep.Totals.Variances[c],
		})
	}
	return export.SummaryData{
		Project:            rep.Project,
		GrandTotalContract: rep.GrandTotal,
		GeneratedAt:        time.Now().UTC(),
		Lines:              lines,
		TotalCosts:         rep.Totals.TotalCosts,
		TotalBudget:        rep.Totals.TotalBudget,
		TotalVariance:      rep.Totals.TotalVariance,
		TotalBilled:        rep.Totals.TotalBilled,
		GrossProfit:        rep.Totals.GrossProfit,
		ProfitMargin:       rep.Totals.ProfitMargin,
		LaborEntries:       rep.LaborOnJob,
	}
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
	if errors.Is(err, projects.ErrNotFound) {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	h.logger.Error("summary operation", slog.Any("error", err))
	httpx.RespondError(w, err)
}
