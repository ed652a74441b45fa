package summary

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/protrack-app/protrack/internal/budgets"
	"github.com/protrack-app/protrack/internal/costs"
	"github.com/protrack-app/protrack/internal/invoices"
	"github.com/protrack-app/protrack/internal/projects"
)

// Source interfaces decouple the rollup from the owning packages'
// repositories, which satisfy them directly. Tests substitute fakes.
type (
	ProjectSource interface {
		Get(ctx context.Context, tenantID, id uuid.UUID) (*projects.Project, error)
		List(ctx context.Context, tenantID uuid.UUID) ([]projects.Project, error)
	}
	EntrySource interface {
		ListByProject(ctx context.Context, tenantID, projectID uuid.UUID, c costs.Category) ([]costs.Entry, error)
	}
	BudgetSource interface {
		GetByProject(ctx context.Context, tenantID, projectID uuid.UUID) (*budgets.Budget, error)
	}
	InvoiceSource interface {
		ListByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]invoices.Invoice, error)
	}
)

// WarmupScheduler enqueues a background recompute for a tenant whose cached
// rollups were just invalidated. The jobs client satisfies it.
type WarmupScheduler interface {
	ScheduleWarmup(ctx context.Context, tenantID uuid.UUID) error
}

// Service computes and caches project rollups.
type Service struct {
	logger   *slog.Logger
	projects ProjectSource
	entries  EntrySource
	budgets  BudgetSource
	invoices InvoiceSource
	cache    *Cache
	warmups  WarmupScheduler
}

// NewService constructs a summary service. cache may be nil, which disables
// caching entirely; warmups may be nil, which skips background re-priming.
func NewService(logger *slog.Logger, p ProjectSource, e EntrySource, b BudgetSource, i InvoiceSource, cache *Cache, warmups WarmupScheduler) *Service {
	return &Service{logger: logger, projects: p, entries: e, budgets: b, invoices: i, cache: cache, warmups: warmups}
}

// Bump invalidates every cached rollup, then schedules a warmup so the
// tenant's active projects are re-primed in the background. Exposed so
// mutating services can depend on the summary cache through a one-method
// interface. A scheduling failure is logged but does not fail the mutation.
func (s *Service) Bump(ctx context.Context, tenantID uuid.UUID) error {
	if err := s.cache.Bump(ctx); err != nil {
		return err
	}
	if s.warmups != nil {
		if err := s.warmups.ScheduleWarmup(ctx, tenantID); err != nil {
			s.logger.Warn("schedule summary warmup",
				slog.String("tenant_id", tenantID.String()), slog.Any("error", err))
		}
	}
	return nil
}

// Totals returns the cached rollup for a project, computing it on a miss.
func (s *Service) Totals(ctx context.Context, tenantID, projectID uuid.UUID) (Totals, error) {
	key, err := s.cache.BuildKey(ctx, "summary", tenantID.String(), projectID.String())
	if err != nil {
		return Totals{}, fmt.Errorf("build cache key: %w", err)
	}
	var t Totals
	err = s.cache.FetchJSON(ctx, key, &t, func(ctx context.Context) (interface{}, error) {
		return s.compute(ctx, tenantID, projectID)
	})
	if err != nil {
		return Totals{}, err
	}
	return t, nil
}

// Report bundles everything the printable exports need.
type Report struct {
	Project    projects.Project
	GrandTotal float64
	Totals     Totals
	LaborOnJob []costs.Entry
}

// Report loads the rollup plus the project header and its labor ledger.
func (s *Service) Report(ctx context.Context, tenantID, projectID uuid.UUID) (*Report, error) {
	p, err := s.projects.Get(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	t, err := s.Totals(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	orders, err := s.changeOrders(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	labor, err := s.entries.ListByProject(ctx, tenantID, projectID, costs.CategoryLabor)
	if err != nil {
		return nil, fmt.Errorf("load labor ledger: %w", err)
	}
	return &Report{
		Project:    *p,
		GrandTotal: projects.GrandTotalContractValue(*p, orders),
		Totals:     t,
		LaborOnJob: costs.VisibleEntries(labor, projectID),
	}, nil
}

// compute loads all source records concurrently and reduces them.
func (s *Service) compute(ctx context.Context, tenantID, projectID uuid.UUID) (Totals, error) {
	p, err := s.projects.Get(ctx, tenantID, projectID)
	if err != nil {
		return Totals{}, err
	}

	var (
		mu        sync.Mutex
		byCat     = make(map[costs.Category][]costs.Entry, len(costs.Categories()))
		budget    budgets.Budget
		billables []invoices.Invoice
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range costs.Categories() {
		c := c
		g.Go(func() error {
			entries, err := s.entries.ListByProject(gctx, tenantID, projectID, c)
			if err != nil {
				return fmt.Errorf("load %s entries: %w", c, err)
			}
			mu.Lock()
			byCat[c] = entries
			mu.Unlock()
			return nil
		})
	}
	g.Go(func() error {
		b, err := s.budgets.GetByProject(gctx, tenantID, projectID)
		if err != nil {
			return fmt.Errorf("load budget: %w", err)
		}
		budget = *b
		return nil
	})
	g.Go(func() error {
		invs, err := s.invoices.ListByProject(gctx, tenantID, projectID)
		if err != nil {
			return fmt.Errorf("load invoices: %w", err)
		}
		billables = invs
		return nil
	})
	if err := g.Wait(); err != nil {
		return Totals{}, err
	}

	return Calculate(p, byCat, budget, billables), nil
}

// changeOrders is pulled through the project source when it also implements
// the lister, as *projects.Repository does.
func (s *Service) changeOrders(ctx context.Context, tenantID, projectID uuid.UUID) ([]projects.ChangeOrder, error) {
	lister, ok := s.projects.(interface {
		ListChangeOrders(ctx context.Context, tenantID, projectID uuid.UUID) ([]projects.ChangeOrder, error)
	})
	if !ok {
		return nil, nil
	}
	return lister.ListChangeOrders(ctx, tenantID, projectID)
}

// WarmupActive recomputes and caches rollups for every project in the
// tenant that is still active. Used by the background warmup job.
func (s *Service) WarmupActive(ctx context.Context, tenantID uuid.UUID) (int, error) {
	list, err := s.projects.List(ctx, tenantID)
	if err != nil {
		return 0, fmt.Errorf("list projects: %w", err)
	}
	warmed := 0
	for _, p := range list {
		if p.Status != projects.StatusActive {
			continue
		}
		if _, err := s.Totals(ctx, tenantID, p.ID); err != nil {
			s.logger.Warn("warm project summary",
				slog.String("project_id", p.ID.String()), slog.Any("error", err))
			continue
		}
		warmed++
	}
	return warmed, nil
}
