package projects

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Store is the persistence surface the service needs. *Repository satisfies
// it; tests substitute an in-memory fake.
type Store interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]Project, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*Project, error)
	Create(ctx context.Context, p Project) (uuid.UUID, error)
	Update(ctx context.Context, p Project) error
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status Status) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	ListChangeOrders(ctx context.Context, tenantID, projectID uuid.UUID) ([]ChangeOrder, error)
	CreateChangeOrder(ctx context.Context, co ChangeOrder) (uuid.UUID, error)
	UpdateChangeOrder(ctx context.Context, co ChangeOrder) error
	DeleteChangeOrder(ctx context.Context, tenantID, id uuid.UUID) error
}

// SummaryInvalidator drops the tenant's cached project summaries after a
// mutation and queues their recompute.
type SummaryInvalidator interface {
	Bump(ctx context.Context, tenantID uuid.UUID) error
}

// Service provides business logic for projects and change orders.
type Service struct {
	logger    *slog.Logger
	store     Store
	summaries SummaryInvalidator
}

// NewService constructs a project service. summaries may be nil.
func NewService(logger *slog.Logger, store Store, summaries SummaryInvalidator) *Service {
	return &Service{logger: logger, store: store, summaries: summaries}
}

// List returns the tenant's projects.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Project, error) {
	return s.store.List(ctx, tenantID)
}

// Get returns a single project.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*Project, error) {
	return s.store.Get(ctx, tenantID, id)
}

// Create validates and inserts a project. Status defaults to Active.
func (s *Service) Create(ctx context.Context, p Project) (*Project, error) {
	if p.Status == "" {
		p.Status = StatusActive
	}
	if err := validateProject(p); err != nil {
		return nil, err
	}
	id, err := s.store.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	p.ID = id
	s.invalidate(ctx, p.TenantID)
	return &p, nil
}

// Update validates and rewrites a project.
func (s *Service) Update(ctx context.Context, p Project) (*Project, error) {
	if err := validateProject(p); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	s.invalidate(ctx, p.TenantID)
	return s.store.Get(ctx, p.TenantID, p.ID)
}

// UpdateStatus changes only the lifecycle state.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status Status) (*Project, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidProject, status)
	}
	if err := s.store.UpdateStatus(ctx, tenantID, id, status); err != nil {
		return nil, fmt.Errorf("update project status: %w", err)
	}
	return s.store.Get(ctx, tenantID, id)
}

// Delete removes a project.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.store.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.invalidate(ctx, tenantID)
	return nil
}

// GrandTotal returns the project's contract value including change orders.
func (s *Service) GrandTotal(ctx context.Context, tenantID, id uuid.UUID) (float64, error) {
	p, err := s.store.Get(ctx, tenantID, id)
	if err != nil {
		return 0, err
	}
	orders, err := s.store.ListChangeOrders(ctx, tenantID, id)
	if err != nil {
		return 0, fmt.Errorf("list change orders: %w", err)
	}
	return GrandTotalContractValue(*p, orders), nil
}

// ListChangeOrders returns a project's change orders.
func (s *Service) ListChangeOrders(ctx context.Context, tenantID, projectID uuid.UUID) ([]ChangeOrder, error) {
	return s.store.ListChangeOrders(ctx, tenantID, projectID)
}

// CreateChangeOrder validates and inserts a change order.
func (s *Service) CreateChangeOrder(ctx context.Context, co ChangeOrder) (*ChangeOrder, error) {
	if co.Name == "" {
		return nil, fmt.Errorf("%w: change order name is required", ErrInvalidProject)
	}
	if _, err := s.store.Get(ctx, co.TenantID, co.ProjectID); err != nil {
		return nil, err
	}
	id, err := s.store.CreateChangeOrder(ctx, co)
	if err != nil {
		return nil, fmt.Errorf("create change order: %w", err)
	}
	co.ID = id
	s.invalidate(ctx, co.TenantID)
	return &co, nil
}

// UpdateChangeOrder validates and rewrites a change order.
func (s *Service) UpdateChangeOrder(ctx context.Context, co ChangeOrder) (*ChangeOrder, error) {
	if co.Name == "" {
		return nil, fmt.Errorf("%w: change order name is required", ErrInvalidProject)
	}
	if err := s.store.UpdateChangeOrder(ctx, co); err != nil {
		return nil, fmt.Errorf("update change order: %w", err)
	}
	s.invalidate(ctx, co.TenantID)
	return &co, nil
}

// DeleteChangeOrder removes a change order.
func (s *Service) DeleteChangeOrder(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.store.DeleteChangeOrder(ctx, tenantID, id); err != nil {
		return fmt.Errorf("delete change order: %w", err)
	}
	s.invalidate(ctx, tenantID)
	return nil
}

func (s *Service) invalidate(ctx context.Context, tenantID uuid.UUID) {
	if s.summaries == nil {
		return
	}
	if err := s.summaries.Bump(ctx, tenantID); err != nil {
		s.logger.Warn("bump summary cache", slog.Any("error", err))
	}
}

func validateProject(p Project) error {
	if p.JobNumber == "" {
		return fmt.Errorf("%w: job number is required", ErrInvalidProject)
	}
	if p.JobName == "" {
		return fmt.Errorf("%w: job name is required", ErrInvalidProject)
	}
	if !ValidStatus(p.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidProject, p.Status)
	}
	if p.FieldShopBoth != "" && !ValidLocation(p.FieldShopBoth) {
		return fmt.Errorf("%w: unknown work location %q", ErrInvalidProject, p.FieldShopBoth)
	}
	if p.TotalContractValue < 0 {
		return fmt.Errorf("%w: contract value cannot be negative", ErrInvalidProject)
	}
	return nil
}
