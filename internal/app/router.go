package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/protrack-app/protrack/internal/auth"
	"github.com/protrack-app/protrack/internal/budgets"
	"github.com/protrack-app/protrack/internal/costs"
	"github.com/protrack-app/protrack/internal/employees"
	"github.com/protrack-app/protrack/internal/invoices"
	"github.com/protrack-app/protrack/internal/projects"
	"github.com/protrack-app/protrack/internal/summary"
	"github.com/protrack-app/protrack/internal/users"
	"github.com/protrack-app/protrack/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger   *slog.Logger
	Config   *Config
	Sessions *auth.Sessions

	AuthHandler      *auth.Handler
	ProjectsHandler  *projects.Handler
	CostsHandler     *costs.Handler
	InvoicesHandler  *invoices.Handler
	BudgetsHandler   *budgets.Handler
	UsersHandler     *users.Handler
	EmployeesHandler *employees.Handler
	SummaryHandler   *summary.Handler
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with ProTrack defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountPublicRoutes)
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	// Everything below requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(params.Sessions))

		r.Route("/auth/session", params.AuthHandler.MountRoutes)
		r.Route("/projects", params.ProjectsHandler.MountRoutes)
		r.Route("/costs", params.CostsHandler.MountRoutes)
		r.Route("/invoices", params.InvoicesHandler.MountRoutes)
		r.Route("/budgets", params.BudgetsHandler.MountRoutes)
		r.Route("/users", params.UsersHandler.MountRoutes)
		r.Route("/employees", params.EmployeesHandler.MountRoutes)
		r.Route("/summary", params.SummaryHandler.MountRoutes)
	})

	return r
}
