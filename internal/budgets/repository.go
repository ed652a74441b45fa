package budgets

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/protrack-app/protrack/internal/costs"
)

// Repository provides PostgreSQL backed persistence for project budgets.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const budgetColumns = `id, tenant_id, project_id,
	material_budget, labor_budget, equipment_budget, subcontractor_budget,
	others_budget, cap_leases_budget, consumable_budget,
	created_at, updated_at`

func scanBudget(row pgx.Row) (Budget, error) {
	var b Budget
	err := row.Scan(&b.ID, &b.TenantID, &b.ProjectID,
		&b.Material, &b.Labor, &b.Equipment, &b.Subcontractor,
		&b.Others, &b.CapLeases, &b.Consumable,
		&b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// GetByProject returns the project's budget, creating a zero row on first
// read. The insert is idempotent under concurrent first reads.
func (r *Repository) GetByProject(ctx context.Context, tenantID, projectID uuid.UUID) (*Budget, error) {
	b, err := scanBudget(r.pool.QueryRow(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE tenant_id = $1 AND project_id = $2",
		tenantID, projectID))
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO budgets (tenant_id, project_id)
		VALUES ($1, $2)
		ON CONFLICT (tenant_id, project_id) DO NOTHING
	`, tenantID, projectID)
	if err != nil {
		return nil, fmt.Errorf("seed budget row: %w", err)
	}

	b, err = scanBudget(r.pool.QueryRow(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE tenant_id = $1 AND project_id = $2",
		tenantID, projectID))
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Update rewrites all category allocations at once.
func (r *Repository) Update(ctx context.Context, b Budget) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE budgets
		SET material_budget = $3, labor_budget = $4, equipment_budget = $5,
		    subcontractor_budget = $6, others_budget = $7, cap_leases_budget = $8,
		    consumable_budget = $9, updated_at = now()
		WHERE tenant_id = $1 AND project_id = $2
	`, b.TenantID, b.ProjectID,
		b.Material, b.Labor, b.Equipment, b.Subcontractor,
		b.Others, b.CapLeases, b.Consumable)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateCategory patches a single category column. The column name comes
// from the closed category table, never from user input.
func (r *Repository) UpdateCategory(ctx context.Context, tenantID, projectID uuid.UUID, c costs.Category, amount float64) error {
	col := costs.Describe(c).BudgetColumn
	query := fmt.Sprintf(
		"UPDATE budgets SET %s = $3, updated_at = now() WHERE tenant_id = $1 AND project_id = $2",
		col)
	tag, err := r.pool.Exec(ctx, query, tenantID, projectID, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
