package summary

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/protrack-app/protrack/internal/budgets"
	"github.com/protrack-app/protrack/internal/costs"
	"github.com/protrack-app/protrack/internal/invoices"
	"github.com/protrack-app/protrack/internal/projects"
)

type fakeSources struct {
	project  projects.Project
	entries  map[costs.Category][]costs.Entry
	budget   budgets.Budget
	invoices []invoices.Invoice

	entryLoads atomic.Int64
}

func (f *fakeSources) Get(_ context.Context, _, id uuid.UUID) (*projects.Project, error) {
	if id != f.project.ID {
		return nil, projects.ErrNotFound
	}
	p := f.project
	return &p, nil
}

func (f *fakeSources) List(_ context.Context, _ uuid.UUID) ([]projects.Project, error) {
	return []projects.Project{f.project}, nil
}

func (f *fakeSources) ListByProject(_ context.Context, _, _ uuid.UUID, c costs.Category) ([]costs.Entry, error) {
	f.entryLoads.Add(1)
	return f.entries[c], nil
}

func (f *fakeSources) GetByProject(_ context.Context, _, _ uuid.UUID) (*budgets.Budget, error) {
	b := f.budget
	return &b, nil
}

type fakeInvoiceSource struct{ f *fakeSources }

func (s fakeInvoiceSource) ListByProject(_ context.Context, _, _ uuid.UUID) ([]invoices.Invoice, error) {
	return s.f.invoices, nil
}

type fakeScheduler struct {
	tenants []uuid.UUID
}

func (s *fakeScheduler) ScheduleWarmup(_ context.Context, tenantID uuid.UUID) error {
	s.tenants = append(s.tenants, tenantID)
	return nil
}

func newTestService(t *testing.T, f *fakeSources) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(rdb, 10*time.Minute)
	return NewService(slog.Default(), f, f, f, fakeInvoiceSource{f}, cache, nil)
}

func testSources() *fakeSources {
	projectID := uuid.New()
	return &fakeSources{
		project: projects.Project{ID: projectID, JobNumber: "24-200", Status: projects.StatusActive},
		entries: map[costs.Category][]costs.Entry{
			costs.CategoryMaterial: {{ProjectID: &projectID, Cost: 1200}},
		},
		budget: func() budgets.Budget {
			var b budgets.Budget
			b.SetAmount(costs.CategoryMaterial, 2000)
			return b
		}(),
		invoices: []invoices.Invoice{{ProjectID: &projectID, Amount: 5000}},
	}
}

func TestTotalsComputedOnceWhileCached(t *testing.T) {
	f := testSources()
	svc := newTestService(t, f)
	ctx := context.Background()
	tenantID := uuid.New()

	first, err := svc.Totals(ctx, tenantID, f.project.ID)
	require.NoError(t, err)
	require.Equal(t, 1200.0, first.TotalCosts)
	require.Equal(t, 800.0, first.Variances[costs.CategoryMaterial])
	loadsAfterFirst := f.entryLoads.Load()

	second, err := svc.Totals(ctx, tenantID, f.project.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, loadsAfterFirst, f.entryLoads.Load(), "cached read must not hit the sources")
}

func TestBumpForcesRecompute(t *testing.T) {
	f := testSources()
	svc := newTestService(t, f)
	ctx := context.Background()
	tenantID := uuid.New()

	first, err := svc.Totals(ctx, tenantID, f.project.ID)
	require.NoError(t, err)
	require.Equal(t, 1200.0, first.TotalCosts)

	// Simulate a new cost entry landing, then a bump.
	f.entries[costs.CategoryMaterial] = append(f.entries[costs.CategoryMaterial],
		costs.Entry{ProjectID: &f.project.ID, Cost: 300})
	require.NoError(t, svc.Bump(ctx, tenantID))

	second, err := svc.Totals(ctx, tenantID, f.project.ID)
	require.NoError(t, err)
	require.Equal(t, 1500.0, second.TotalCosts)
}

func TestBumpSchedulesTenantWarmup(t *testing.T) {
	f := testSources()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sched := &fakeScheduler{}
	svc := NewService(slog.Default(), f, f, f, fakeInvoiceSource{f},
		NewCache(rdb, 10*time.Minute), sched)

	tenantID := uuid.New()
	require.NoError(t, svc.Bump(context.Background(), tenantID))
	require.Equal(t, []uuid.UUID{tenantID}, sched.tenants)
}

func TestTotalsUnknownProject(t *testing.T) {
	f := testSources()
	svc := newTestService(t, f)

	_, err := svc.Totals(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, projects.ErrNotFound)
}

func TestWarmupActiveSkipsInactive(t *testing.T) {
	f := testSources()
	f.project.Status = projects.StatusCompleted
	svc := newTestService(t, f)

	warmed, err := svc.WarmupActive(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Zero(t, warmed)
}
