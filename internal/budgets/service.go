package budgets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/protrack-app/protrack/internal/costs"
)

// SummaryInvalidator drops the tenant's cached project summaries after a
// mutation and queues their recompute.
type SummaryInvalidator interface {
	Bump(ctx context.Context, tenantID uuid.UUID) error
}

// Service provides business logic for project budgets.
type Service struct {
	logger    *slog.Logger
	repo      *Repository
	summaries SummaryInvalidator
}

// NewService constructs a budget service. summaries may be nil.
func NewService(logger *slog.Logger, repo *Repository, summaries SummaryInvalidator) *Service {
	return &Service{logger: logger, repo: repo, summaries: summaries}
}

// Get returns the project's budget, seeding a zero row on first read.
func (s *Service) Get(ctx context.Context, tenantID, projectID uuid.UUID) (*Budget, error) {
	return s.repo.GetByProject(ctx, tenantID, projectID)
}

// Update validates and rewrites every category allocation.
func (s *Service) Update(ctx context.Context, b Budget) (*Budget, error) {
	for _, c := range costs.Categories() {
		if b.Amount(c) < 0 {
			return nil, fmt.Errorf("%w: %s budget cannot be negative", ErrInvalidBudget, c)
		}
	}
	// Seed first so an update on a never-read budget still lands.
	if _, err := s.repo.GetByProject(ctx, b.TenantID, b.ProjectID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update budget: %w", err)
	}
	s.invalidate(ctx, b.TenantID)
	return s.repo.GetByProject(ctx, b.TenantID, b.ProjectID)
}

// UpdateCategory patches a single category allocation.
func (s *Service) UpdateCategory(ctx context.Context, tenantID, projectID uuid.UUID, c costs.Category, amount float64) (*Budget, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: %s budget cannot be negative", ErrInvalidBudget, c)
	}
	if _, err := s.repo.GetByProject(ctx, tenantID, projectID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateCategory(ctx, tenantID, projectID, c, amount); err != nil {
		return nil, fmt.Errorf("update %s budget: %w", c, err)
	}
	s.invalidate(ctx, tenantID)
	return s.repo.GetByProject(ctx, tenantID, projectID)
}

func (s *Service) invalidate(ctx context.Context, tenantID uuid.UUID) {
	if s.summaries == nil {
		return
	}
	if err := s.summaries.Bump(ctx, tenantID); err != nil {
		s.logger.Warn("bump summary cache", slog.Any("error", err))
	}
}
