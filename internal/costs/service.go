package costs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// ErrInvalidEntry occurs when an entry fails business validation.
var ErrInvalidEntry = errors.New("invalid cost entry")

// SummaryInvalidator drops the tenant's cached project summaries after a
// mutation and queues their recompute.
type SummaryInvalidator interface {
	Bump(ctx context.Context, tenantID uuid.UUID) error
}

// Service provides business logic for cost entries.
type Service struct {
	logger    *slog.Logger
	repo      *Repository
	summaries SummaryInvalidator
}

// NewService constructs a cost service. summaries may be nil.
func NewService(logger *slog.Logger, repo *Repository, summaries SummaryInvalidator) *Service {
	return &Service{logger: logger, repo: repo, summaries: summaries}
}

// List returns the entries visible under a project, restricted to the
// selected change-order bucket and then filtered. Filters never see entries
// outside the bucket.
func (s *Service) List(ctx context.Context, tenantID, projectID uuid.UUID, c Category, changeOrder string, f FilterSpec) ([]Entry, error) {
	entries, err := s.repo.ListByProject(ctx, tenantID, projectID, c)
	if err != nil {
		return nil, fmt.Errorf("list %s entries: %w", c, err)
	}
	entries = PartitionByChangeOrder(entries, changeOrder)
	return ApplyFilters(entries, c, f), nil
}

// Get returns a single entry.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID, c Category) (*Entry, error) {
	return s.repo.Get(ctx, tenantID, id, c)
}

// Create validates and inserts an entry.
func (s *Service) Create(ctx context.Context, c Category, e Entry) (*Entry, error) {
	if err := validateEntry(c, e); err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, c, e)
	if err != nil {
		return nil, fmt.Errorf("create %s entry: %w", c, err)
	}
	e.ID = id
	s.invalidate(ctx, e.TenantID)
	return &e, nil
}

// Update validates and rewrites an entry.
func (s *Service) Update(ctx context.Context, c Category, e Entry) (*Entry, error) {
	if err := validateEntry(c, e); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c, e); err != nil {
		return nil, fmt.Errorf("update %s entry: %w", c, err)
	}
	s.invalidate(ctx, e.TenantID)
	return s.repo.Get(ctx, e.TenantID, e.ID, c)
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID, c Category) error {
	if err := s.repo.Delete(ctx, tenantID, id, c); err != nil {
		return fmt.Errorf("delete %s entry: %w", c, err)
	}
	s.invalidate(ctx, tenantID)
	return nil
}

// invalidate bumps the summary cache. Stale summaries are tolerable, so a
// failed bump is logged and the mutation still succeeds.
func (s *Service) invalidate(ctx context.Context, tenantID uuid.UUID) {
	if s.summaries == nil {
		return
	}
	if err := s.summaries.Bump(ctx, tenantID); err != nil {
		s.logger.Warn("bump summary cache", slog.Any("error", err))
	}
}

func validateEntry(c Category, e Entry) error {
	if e.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidEntry)
	}
	switch c {
	case CategoryLabor:
		if e.EmployeeName == "" {
			return fmt.Errorf("%w: employee name is required", ErrInvalidEntry)
		}
		if e.StHours < 0 || e.OtHours < 0 || e.DtHours < 0 {
			return fmt.Errorf("%w: hours cannot be negative", ErrInvalidEntry)
		}
	default:
		if e.Cost < 0 {
			return fmt.Errorf("%w: cost cannot be negative", ErrInvalidEntry)
		}
	}
	return nil
}
