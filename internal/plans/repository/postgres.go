package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/itjpay/billing-dashboard/internal/plans/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const planColumns = `id, project_id, name, description, price, frequency, status, features, subscribers`

func scanPlan(row interface{ Scan(...any) error }, p *domain.Plan) error {
	var features pq.StringArray
	if err := row.Scan(&p.ID, &p.ProjectID, &p.Name, &p.Description, &p.Price, &p.Frequency, &p.Status, &features, &p.Subscribers); err != nil {
		return err
	}
	p.Features = []string(features)
	return nil
}

func (r *PostgresRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Plan, error) {
	q := `SELECT ` + planColumns + ` FROM plans WHERE project_id = $1 ORDER BY created_at ASC;`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Plan, 0, 4)
	for rows.Next() {
		var p domain.Plan
		if err := scanPlan(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*domain.Plan, error) {
	q := `SELECT ` + planColumns + ` FROM plans WHERE id = $1;`
	var p domain.Plan
	if err := scanPlan(r.db.QueryRowContext(ctx, q, id), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *domain.Plan) error {
	const q = `
INSERT INTO plans (id, project_id, name, description, price, frequency, status, features, subscribers)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
`
	_, err := r.db.ExecContext(ctx, q, p.ID, p.ProjectID, p.Name, p.Description, p.Price, p.Frequency, p.Status, pq.Array(p.Features), p.Subscribers)
	if err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	return nil
}

func (r *PostgresRepository) AddSubscribers(ctx context.Context, id string, delta int) error {
	res, err := r.db.ExecContext(ctx, `UPDATE plans SET subscribers = subscribers + $2 WHERE id = $1;`, id, delta)
	if err != nil {
		return fmt.Errorf("add plan subscribers: %w", err)
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
