package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/itjpay/billing-dashboard/internal/clients/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const clientColumns = `id, project_id, name, email, status, plan, plan_id, spent, last_payment, avatar`

func (r *PostgresRepository) List(ctx context.Context) ([]domain.Client, error) {
	return r.query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY seq ASC;`)
}

func (r *PostgresRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Client, error) {
	return r.query(ctx, `SELECT `+clientColumns+` FROM clients WHERE project_id = $1 ORDER BY seq ASC;`, projectID)
}

func (r *PostgresRepository) query(ctx context.Context, q string, args ...any) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Client, 0, 16)
	for rows.Next() {
		var (
			c    domain.Client
			last sql.NullTime
		)
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Email, &c.Status, &c.Plan, &c.PlanID, &c.Spent, &last, &c.Avatar); err != nil {
			return nil, err
		}
		if last.Valid {
			t := last.Time
			c.LastPayment = &t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Append(ctx context.Context, clients ...domain.Client) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	const q = `
INSERT INTO clients (id, project_id, name, email, status, plan, plan_id, spent, last_payment, avatar)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`
	for _, c := range clients {
		var last sql.NullTime
		if c.LastPayment != nil {
			last = sql.NullTime{Time: *c.LastPayment, Valid: true}
		}
		if _, err := tx.ExecContext(ctx, q, c.ID, c.ProjectID, c.Name, c.Email, c.Status, c.Plan, c.PlanID, c.Spent, last, c.Avatar); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				err = domain.ErrDuplicate
			}
			return fmt.Errorf("insert client %s: %w", c.ID, err)
		}
	}
	return tx.Commit()
}
