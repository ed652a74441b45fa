package employees

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for the labor roster.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const employeeColumns = "id, tenant_id, name, st_rate, ot_rate, dt_rate, per_diem, mob_rate, is_active, created_at, updated_at"

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.TenantID, &e.Name,
		&e.StRate, &e.OtRate, &e.DtRate, &e.PerDiem, &e.MobRate,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// List returns the tenant's roster ordered by name.
func (r *Repository) List(ctx context.Context, tenantID uuid.UUID) ([]Employee, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE tenant_id = $1 ORDER BY name", tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Get returns a single roster entry.
func (r *Repository) Get(ctx context.Context, tenantID, id uuid.UUID) (*Employee, error) {
	e, err := scanEmployee(r.pool.QueryRow(ctx,
		"SELECT "+employeeColumns+" FROM employees WHERE tenant_id = $1 AND id = $2", tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Create inserts a roster entry and returns the generated ID.
func (r *Repository) Create(ctx context.Context, e Employee) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO employees (tenant_id, name, st_rate, ot_rate, dt_rate, per_diem, mob_rate, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, e.TenantID, e.Name, e.StRate, e.OtRate, e.DtRate, e.PerDiem, e.MobRate, e.IsActive).Scan(&id)
	return id, err
}

// Update rewrites a roster entry.
func (r *Repository) Update(ctx context.Context, e Employee) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE employees
		SET name = $3, st_rate = $4, ot_rate = $5, dt_rate = $6, per_diem = $7,
		    mob_rate = $8, is_active = $9, updated_at = now()
		WHERE tenant_id = $1 AND id = $2
	`, e.TenantID, e.ID, e.Name, e.StRate, e.OtRate, e.DtRate, e.PerDiem, e.MobRate, e.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a roster entry.
func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM employees WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
