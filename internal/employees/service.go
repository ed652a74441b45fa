package employees

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Service provides business logic for the labor roster.
type Service struct {
	logger *slog.Logger
	repo   *Repository
}

// NewService constructs an employee service.
func NewService(logger *slog.Logger, repo *Repository) *Service {
	return &Service{logger: logger, repo: repo}
}

// List returns the tenant's roster.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]Employee, error) {
	return s.repo.List(ctx, tenantID)
}

// Get returns a single roster entry.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*Employee, error) {
	return s.repo.Get(ctx, tenantID, id)
}

// Create validates and inserts a roster entry.
func (s *Service) Create(ctx context.Context, e Employee) (*Employee, error) {
	if err := validateEmployee(e); err != nil {
		return nil, err
	}
	e.IsActive = true
	id, err := s.repo.Create(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	e.ID = id
	return &e, nil
}

// Update validates and rewrites a roster entry.
func (s *Service) Update(ctx context.Context, e Employee) (*Employee, error) {
	if err := validateEmployee(e); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	return s.repo.Get(ctx, e.TenantID, e.ID)
}

// Delete removes a roster entry.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}

func validateEmployee(e Employee) error {
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidEmployee)
	}
	if e.StRate < 0 || e.OtRate < 0 || e.DtRate < 0 || e.PerDiem < 0 || e.MobRate < 0 {
		return fmt.Errorf("%w: rates cannot be negative", ErrInvalidEmployee)
	}
	return nil
}
