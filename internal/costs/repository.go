package costs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEntryNotFound occurs when a cost entry does not exist for the tenant.
var ErrEntryNotFound = errors.New("cost entry not found")

// Repository provides PostgreSQL backed persistence for cost entries. Each
// category lives in its own table; Descriptor.Table selects it.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// columns returns the mutable column names for a category and pointers into
// e for each, in matching order. The same list serves Scan targets and
// insert/update arguments, so the two can never drift apart.
func columns(c Category, e *Entry) ([]string, []any) {
	cols := []string{"project_id", "change_order_id", "date"}
	vals := []any{&e.ProjectID, &e.ChangeOrderID, &e.Date}

	switch c {
	case CategoryLabor:
		cols = append(cols,
			"employee_id", "employee_name",
			"st_hours", "st_rate", "ot_hours", "ot_rate", "dt_hours", "dt_rate",
			"per_diem", "mob_qty", "mob_rate")
		vals = append(vals,
			&e.EmployeeID, &e.EmployeeName,
			&e.StHours, &e.StRate, &e.OtHours, &e.OtRate, &e.DtHours, &e.DtRate,
			&e.PerDiem, &e.MobQty, &e.MobRate)
	case CategoryOthers:
		cols = append(cols, "vendor", "description", "invoice_number", "cost")
		vals = append(vals, &e.Vendor, &e.Description, &e.InvoiceNumber, &e.Cost)
	case CategorySubcontractor:
		cols = append(cols, "vendor", "subcontractor_name", "invoice_number", "cost")
		vals = append(vals, &e.Vendor, &e.SubcontractorName, &e.InvoiceNumber, &e.Cost)
	default:
		cols = append(cols, "vendor", "invoice_number", "cost")
		vals = append(vals, &e.Vendor, &e.InvoiceNumber, &e.Cost)
	}

	cols = append(cols, "in_system")
	vals = append(vals, &e.InSystem)
	return cols, vals
}

func scanEntry(row pgx.Row, c Category) (Entry, error) {
	var e Entry
	_, vals := columns(c, &e)
	targets := append([]any{&e.ID, &e.TenantID}, vals...)
	targets = append(targets, &e.CreatedAt, &e.UpdatedAt)
	err := row.Scan(targets...)
	return e, err
}

func selectClause(c Category) string {
	cols, _ := columns(c, &Entry{})
	return "id, tenant_id, " + strings.Join(cols, ", ") + ", created_at, updated_at"
}

// ListByProject returns entries visible under the project: its own rows plus
// legacy rows with no project, oldest first.
func (r *Repository) ListByProject(ctx context.Context, tenantID, projectID uuid.UUID, c Category) ([]Entry, error) {
	d := Describe(c)
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE tenant_id = $1 AND (project_id = $2 OR project_id IS NULL)
		ORDER BY date, created_at
	`, selectClause(c), d.Table)

	rows, err := r.pool.Query(ctx, query, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows, c)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns a single entry.
func (r *Repository) Get(ctx context.Context, tenantID, id uuid.UUID, c Category) (*Entry, error) {
	d := Describe(c)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE tenant_id = $1 AND id = $2", selectClause(c), d.Table)
	e, err := scanEntry(r.pool.QueryRow(ctx, query, tenantID, id), c)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Create inserts an entry and returns its generated ID.
func (r *Repository) Create(ctx context.Context, c Category, e Entry) (uuid.UUID, error) {
	d := Describe(c)
	cols, vals := columns(c, &e)

	placeholders := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	args = append(args, e.TenantID)
	placeholders = append(placeholders, "$1")
	for i, v := range vals {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+2))
		args = append(args, v)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (tenant_id, %s) VALUES (%s) RETURNING id",
		d.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Update rewrites all mutable columns of an entry.
func (r *Repository) Update(ctx context.Context, c Category, e Entry) error {
	d := Describe(c)
	cols, vals := columns(c, &e)

	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+2)
	args = append(args, e.TenantID, e.ID)
	for i, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+3))
		args = append(args, vals[i])
	}

	query := fmt.Sprintf(
		"UPDATE %s SET %s, updated_at = now() WHERE tenant_id = $1 AND id = $2",
		d.Table, strings.Join(sets, ", "))

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Delete removes an entry.
func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID, c Category) error {
	d := Describe(c)
	tag, err := r.pool.Exec(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE tenant_id = $1 AND id = $2", d.Table),
		tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}
