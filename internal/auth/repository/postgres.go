package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itjpay/billing-dashboard/internal/auth/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, uid string) (*domain.Admin, error) {
	const q = `
		SELECT uid, email, display_name, photo_url, role, created_at, updated_at, last_login_at
		FROM admins
		WHERE uid = $1`

	var (
		a                     domain.Admin
		displayName, photoURL sql.NullString
		lastLoginAt           sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, uid).Scan(
		&a.UID, &a.Email, &displayName, &photoURL, &a.Role, &a.CreatedAt, &a.UpdatedAt, &lastLoginAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}

	if displayName.Valid {
		a.DisplayName = &displayName.String
	}
	if photoURL.Valid {
		a.PhotoURL = &photoURL.String
	}
	if lastLoginAt.Valid {
		a.LastLoginAt = &lastLoginAt.Time
	}
	return &a, nil
}

// Upsert keeps created_at and role of an existing row.
func (r *PostgresRepository) Upsert(ctx context.Context, a *domain.Admin) error {
	const q = `
		INSERT INTO admins (uid, email, display_name, photo_url, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (uid) DO UPDATE SET
			email = EXCLUDED.email,
			display_name = COALESCE(EXCLUDED.display_name, admins.display_name),
			photo_url = COALESCE(EXCLUDED.photo_url, admins.photo_url),
			updated_at = EXCLUDED.updated_at
		RETURNING role, created_at`

	err := r.db.QueryRowContext(ctx, q,
		a.UID, a.Email, nullString(a.DisplayName), nullString(a.PhotoURL), a.Role, a.UpdatedAt,
	).Scan(&a.Role, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RecordLogin(ctx context.Context, uid string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE admins SET last_login_at = $2 WHERE uid = $1`, uid, at)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
