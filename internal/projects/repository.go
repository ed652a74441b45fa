package projects

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence for projects and change
// orders.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const projectColumns = "id, tenant_id, job_number, job_name, customer, field_shop_both, total_contract_value, status, created_at, updated_at"

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.TenantID, &p.JobNumber, &p.JobName, &p.Customer,
		&p.FieldShopBoth, &p.TotalContractValue, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// List returns the tenant's projects ordered by job number.
func (r *Repository) List(ctx context.Context, tenantID uuid.UUID) ([]Project, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE tenant_id = $1 ORDER BY job_number",
		tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Get returns a single project.
func (r *Repository) Get(ctx context.Context, tenantID, id uuid.UUID) (*Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE tenant_id = $1 AND id = $2",
		tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Create inserts a project and returns its generated ID.
func (r *Repository) Create(ctx context.Context, p Project) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (tenant_id, job_number, job_name, customer, field_shop_both, total_contract_value, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.TenantID, p.JobNumber, p.JobName, p.Customer, p.FieldShopBoth, p.TotalContractValue, p.Status).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, ErrDuplicateJob
		}
		return uuid.Nil, err
	}
	return id, nil
}

// Update rewrites a project's mutable fields.
func (r *Repository) Update(ctx context.Context, p Project) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE projects
		SET job_number = $3, job_name = $4, customer = $5, field_shop_both = $6,
		    total_contract_value = $7, status = $8, updated_at = now()
		WHERE tenant_id = $1 AND id = $2
	`, p.TenantID, p.ID, p.JobNumber, p.JobName, p.Customer, p.FieldShopBoth, p.TotalContractValue, p.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateJob
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatus changes only the lifecycle state.
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status Status) error {
	tag, err := r.pool.Exec(ctx,
		"UPDATE projects SET status = $3, updated_at = now() WHERE tenant_id = $1 AND id = $2",
		tenantID, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a project.
func (r *Repository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM projects WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const changeOrderColumns = "id, tenant_id, project_id, name, description, additional_contract_value, created_at, updated_at"

func scanChangeOrder(row pgx.Row) (ChangeOrder, error) {
	var co ChangeOrder
	err := row.Scan(&co.ID, &co.TenantID, &co.ProjectID, &co.Name, &co.Description,
		&co.AdditionalContractValue, &co.CreatedAt, &co.UpdatedAt)
	return co, err
}

// ListChangeOrders returns a project's change orders, oldest first.
func (r *Repository) ListChangeOrders(ctx context.Context, tenantID, projectID uuid.UUID) ([]ChangeOrder, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+changeOrderColumns+" FROM change_orders WHERE tenant_id = $1 AND project_id = $2 ORDER BY created_at",
		tenantID, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []ChangeOrder
	for rows.Next() {
		co, err := scanChangeOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, co)
	}
	return orders, rows.Err()
}

// CreateChangeOrder inserts a change order and returns its generated ID.
func (r *Repository) CreateChangeOrder(ctx context.Context, co ChangeOrder) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx, `
		INSERT INTO change_orders (tenant_id, project_id, name, description, additional_contract_value)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, co.TenantID, co.ProjectID, co.Name, co.Description, co.AdditionalContractValue).Scan(&id)
	return id, err
}

// UpdateChangeOrder rewrites a change order's mutable fields.
func (r *Repository) UpdateChangeOrder(ctx context.Context, co ChangeOrder) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE change_orders
		SET name = $3, description = $4, additional_contract_value = $5, updated_at = now()
		WHERE tenant_id = $1 AND id = $2
	`, co.TenantID, co.ID, co.Name, co.Description, co.AdditionalContractValue)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteChangeOrder removes a change order.
func (r *Repository) DeleteChangeOrder(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM change_orders WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
