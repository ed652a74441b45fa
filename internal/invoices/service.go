package invoices

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// SummaryInvalidator drops the tenant's cached project summaries after a
// mutation and queues their recompute.
type SummaryInvalidator interface {
	Bump(ctx context.Context, tenantID uuid.UUID) error
}

// Service provides business logic for invoices.
type Service struct {
	logger    *slog.Logger
	repo      *Repository
	summaries SummaryInvalidator
}

// NewService constructs an invoice service. summaries may be nil.
func NewService(logger *slog.Logger, repo *Repository, summaries SummaryInvalidator) *Service {
	return &Service{logger: logger, repo: repo, summaries: summaries}
}

// List returns a project's invoices, restricted to the selected change-order
// bucket and then filtered.
func (s *Service) List(ctx context.Context, tenantID, projectID uuid.UUID, changeOrder string, f FilterSpec) ([]Invoice, error) {
	invoices, err := s.repo.ListByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	invoices = PartitionByChangeOrder(invoices, changeOrder)
	return ApplyFilters(invoices, f), nil
}

// Get returns a single invoice.
func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error) {
	return s.repo.Get(ctx, tenantID, id)
}

// Create validates and inserts an invoice.
func (s *Service) Create(ctx context.Context, inv Invoice) (*Invoice, error) {
	if err := validateInvoice(inv); err != nil {
		return nil, err
	}
	id, err := s.repo.Create(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	inv.ID = id
	s.invalidate(ctx, inv.TenantID)
	return &inv, nil
}

// Update validates and rewrites an invoice.
func (s *Service) Update(ctx context.Context, inv Invoice) (*Invoice, error) {
	if err := validateInvoice(inv); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	s.invalidate(ctx, inv.TenantID)
	return s.repo.Get(ctx, inv.TenantID, inv.ID)
}

// Delete removes an invoice.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
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

func validateInvoice(inv Invoice) error {
	if inv.InvoiceNumber == "" {
		return fmt.Errorf("%w: invoice number is required", ErrInvalidInvoice)
	}
	if inv.DateBilled == "" {
		return fmt.Errorf("%w: billing date is required", ErrInvalidInvoice)
	}
	if inv.Amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", ErrInvalidInvoice)
	}
	return nil
}
