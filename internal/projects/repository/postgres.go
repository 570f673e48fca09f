package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itjpay/billing-dashboard/internal/projects/domain"
)

// PostgresRepository provides persistence operations for projects
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository creates a new project repository
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const projectColumns = `id, name, description, status, client_count, subscription_count, created_at`

func scanProject(row interface{ Scan(...any) error }, p *domain.Project) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.ClientCount, &p.SubscriptionCount, &p.Date)
}

// List returns all projects, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := scanProject(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1;`
	var p domain.Project
	if err := scanProject(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *domain.Project) error {
	const q = `
INSERT INTO projects (id, name, description, status, client_count, subscription_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`
	_, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Description, p.Status, p.ClientCount, p.SubscriptionCount, p.Date)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Project, error) {
	q := `UPDATE projects SET status = $2 WHERE id = $1 RETURNING ` + projectColumns + `;`
	var p domain.Project
	if err := scanProject(r.db.QueryRowContext(ctx, q, id, status), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update project status: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) AdjustCounts(ctx context.Context, id string, clients, subscriptions int) error {
	const q = `
UPDATE projects
SET client_count = client_count + $2, subscription_count = subscription_count + $3
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, id, clients, subscriptions)
	if err != nil {
		return fmt.Errorf("adjust project counts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
