// Package invoices tracks billed amounts per project. Billed totals feed the
// profitability summary alongside cost entries.
package invoices

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("invoice not found")
	ErrInvalidInvoice = errors.New("invalid invoice")
)

// Invoice is a billing record against a project.
type Invoice struct {
	ID            uuid.UUID  `json:"id"`
	TenantID      uuid.UUID  `json:"-"`
	ProjectID     *uuid.UUID `json:"project_id"`
	ChangeOrderID *uuid.UUID `json:"change_order_id,omitempty"`
	InvoiceNumber string     `json:"invoice_number"`
	Amount        float64    `json:"amount"`
	DateBilled    string     `json:"date_billed"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// BelongsTo reports whether the invoice counts toward the given project.
// Unlike cost entries, invoices have no legacy global rule: a detached
// invoice bills no project.
func (inv Invoice) BelongsTo(projectID uuid.UUID) bool {
	return inv.ProjectID != nil && *inv.ProjectID == projectID
}

// TotalBilled sums invoice amounts.
func TotalBilled(invoices []Invoice) float64 {
	var sum float64
	for _, inv := range invoices {
		sum += inv.Amount
	}
	return sum
}
