package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/projects/domain"
)

func setupPostgres(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

var projectCols = []string{"id", "name", "description", "status", "client_count", "subscription_count", "created_at"}

func TestPostgresRepository_List(t *testing.T) {
	repo, mock := setupPostgres(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, name, description, status, client_count, subscription_count, created_at FROM projects`).
		WillReturnRows(sqlmock.NewRows(projectCols).
			AddRow("1", "SaaS Platform", "portal", "active", 45, 38, now).
			AddRow("2", "E-commerce API", "api", "active", 157, 142, now.Add(-time.Hour)))

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "SaaS Platform", items[0].Name)
	assert.Equal(t, 142, items[1].SubscriptionCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Get(t *testing.T) {
	repo, mock := setupPostgres(t)

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`FROM projects WHERE id = \$1`).
			WithArgs("1").
			WillReturnRows(sqlmock.NewRows(projectCols).AddRow("1", "SaaS Platform", "portal", "active", 45, 38, time.Now()))

		p, err := repo.Get(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, "1", p.ID)
	})

	t.Run("missing maps to ErrNotFound", func(t *testing.T) {
		mock.ExpectQuery(`FROM projects WHERE id = \$1`).
			WithArgs("x").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), "x")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Create(t *testing.T) {
	repo, mock := setupPostgres(t)
	p := &domain.Project{ID: "p1", Name: "New", Description: "d", Status: domain.StatusActive, Date: time.Now()}

	mock.ExpectExec(`INSERT INTO projects`).
		WithArgs(p.ID, p.Name, p.Description, p.Status, 0, 0, p.Date).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), p))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_AdjustCounts(t *testing.T) {
	repo, mock := setupPostgres(t)

	mock.ExpectExec(`UPDATE projects`).WithArgs("1", 2, 0).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE projects`).WithArgs("nope", 1, 0).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.AdjustCounts(context.Background(), "1", 2, 0))
	assert.ErrorIs(t, repo.AdjustCounts(context.Background(), "nope", 1, 0), domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
