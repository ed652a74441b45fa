package projects

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	projects map[uuid.UUID]Project
	orders   map[uuid.UUID]ChangeOrder
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		projects: make(map[uuid.UUID]Project),
		orders:   make(map[uuid.UUID]ChangeOrder),
	}
}

func (f *fakeStore) List(_ context.Context, tenantID uuid.UUID) ([]Project, error) {
	var out []Project
	for _, p := range f.projects {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, tenantID, id uuid.UUID) (*Project, error) {
	p, ok := f.projects[id]
	if !ok || p.TenantID != tenantID {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (f *fakeStore) Create(_ context.Context, p Project) (uuid.UUID, error) {
	p.ID = uuid.New()
	f.projects[p.ID] = p
	return p.ID, nil
}

func (f *fakeStore) Update(_ context.Context, p Project) error {
	if _, ok := f.projects[p.ID]; !ok {
		return ErrNotFound
	}
	f.projects[p.ID] = p
	return nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, tenantID, id uuid.UUID, status Status) error {
	p, ok := f.projects[id]
	if !ok || p.TenantID != tenantID {
		return ErrNotFound
	}
	p.Status = status
	f.projects[id] = p
	return nil
}

func (f *fakeStore) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	p, ok := f.projects[id]
	if !ok || p.TenantID != tenantID {
		return ErrNotFound
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeStore) ListChangeOrders(_ context.Context, tenantID, projectID uuid.UUID) ([]ChangeOrder, error) {
	var out []ChangeOrder
	for _, co := range f.orders {
		if co.TenantID == tenantID && co.ProjectID == projectID {
			out = append(out, co)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateChangeOrder(_ context.Context, co ChangeOrder) (uuid.UUID, error) {
	co.ID = uuid.New()
	f.orders[co.ID] = co
	return co.ID, nil
}

func (f *fakeStore) UpdateChangeOrder(_ context.Context, co ChangeOrder) error {
	if _, ok := f.orders[co.ID]; !ok {
		return ErrNotFound
	}
	f.orders[co.ID] = co
	return nil
}

func (f *fakeStore) DeleteChangeOrder(_ context.Context, tenantID, id uuid.UUID) error {
	co, ok := f.orders[id]
	if !ok || co.TenantID != tenantID {
		return ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func newTestService(store Store) *Service {
	return NewService(slog.Default(), store, nil)
}

func TestCreateDefaultsToActive(t *testing.T) {
	svc := newTestService(newFakeStore())

	p, err := svc.Create(context.Background(), Project{
		TenantID:  uuid.New(),
		JobNumber: "24-101",
		JobName:   "Compressor Station",
	})
	require.NoError(t, err)
	require.Equal(t, StatusActive, p.Status)
	require.NotEqual(t, uuid.Nil, p.ID)
}

func TestCreateRejectsMissingJobNumber(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.Create(context.Background(), Project{TenantID: uuid.New(), JobName: "No Number"})
	require.ErrorIs(t, err, ErrInvalidProject)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	tenantID := uuid.New()

	p, err := svc.Create(context.Background(), Project{
		TenantID:  tenantID,
		JobNumber: "24-102",
		JobName:   "Pipe Rack",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), tenantID, p.ID, Status("Archived"))
	require.ErrorIs(t, err, ErrInvalidProject)

	updated, err := svc.UpdateStatus(context.Background(), tenantID, p.ID, StatusOnHold)
	require.NoError(t, err)
	require.Equal(t, StatusOnHold, updated.Status)
}

func TestGrandTotalIncludesChangeOrders(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	tenantID := uuid.New()

	p, err := svc.Create(context.Background(), Project{
		TenantID:           tenantID,
		JobNumber:          "24-103",
		JobName:            "Tank Farm",
		TotalContractValue: 1_000_000,
	})
	require.NoError(t, err)

	_, err = svc.CreateChangeOrder(context.Background(), ChangeOrder{
		TenantID: tenantID, ProjectID: p.ID, Name: "CO-1", AdditionalContractValue: 250_000,
	})
	require.NoError(t, err)
	_, err = svc.CreateChangeOrder(context.Background(), ChangeOrder{
		TenantID: tenantID, ProjectID: p.ID, Name: "CO-2", AdditionalContractValue: 50_000,
	})
	require.NoError(t, err)

	total, err := svc.GrandTotal(context.Background(), tenantID, p.ID)
	require.NoError(t, err)
	require.Equal(t, 1_300_000.0, total)
}

func TestChangeOrderRequiresExistingProject(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.CreateChangeOrder(context.Background(), ChangeOrder{
		TenantID: uuid.New(), ProjectID: uuid.New(), Name: "CO-1",
	})
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestTenantIsolation(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	p, err := svc.Create(context.Background(), Project{
		TenantID:  uuid.New(),
		JobNumber: "24-104",
		JobName:   "Visible Only To Owner",
	})
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), p.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
