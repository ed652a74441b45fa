package invoices

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for invoices.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const invoiceColumns = "id, tenant_id, project_id, change_order_id, invoice_number, amount, date_billed, created_at, updated_at"

func scanInvoice(row pgx.Row) (Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.TenantID, &inv.ProjectID, &inv.ChangeOrderID,
		&inv.InvoiceNumber, &inv.Amount, &inv.DateBilled, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

// ListByProject returns the project's invoices, oldest billing date first.
func (r *Repository) ListByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]Invoice, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices
		WHERE tenant_id = $1 AND project_id = $2
		ORDER BY date_billed, created_at
	`, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// Get returns a single invoice.
func (r *Repository) Get(ctx context.Context, tenantID, id uuid.UUID) (*Invoice, error) {
	inv, err := scanInvoice(r.pool.QueryRow(ctx,
		"SELECT "+invoiceColumns+" FROM invoices WHERE tenant_id = $1 AND id = $2",
		tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &inv, nil
}

// Create inserts an invoice and returns its generated ID.
func (r *Repository) Create(ctx context.Context, inv Invoice) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO invoices (tenant_id, project_id, change_order_id, invoice_number, amount, date_billed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, inv.TenantID, inv.ProjectID, inv.ChangeOrderID, inv.InvoiceNumber, inv.Amount, inv.DateBilled).Scan(&id)
	return id, err
}

// Update rewrites an invoice's mutable fields.
func (r *Repository) Update(ctx context.Context, inv Invoice) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE invoices
		SET project_id = $3, change_order_id = $4, invoice_number = $5, amount = $6,
		    date_billed = $7, updated_at = now()
		WHERE tenant_id = $1 AND id = $2
	`, inv.TenantID, inv.ID, inv.ProjectID, inv.ChangeOrderID, inv.InvoiceNumber, inv.Amount, inv.DateBilled)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an invoice.
func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM invoices WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
