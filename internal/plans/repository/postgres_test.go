package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/plans/domain"
)

func setupPostgres(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

var planCols = []string{"id", "project_id", "name", "description", "price", "frequency", "status", "features", "subscribers"}

func TestPostgresRepository_ListByProject(t *testing.T) {
	repo, mock := setupPostgres(t)

	mock.ExpectQuery(`FROM plans WHERE project_id = \$1`).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows(planCols).
			AddRow("101", "1", "Basic SaaS Plan", "Entry", 29.0, "monthly", "active", `{"10 Projects","Basic Support"}`, 45))

	items, err := repo.ListByProject(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, []string{"10 Projects", "Basic Support"}, items[0].Features)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetNotFound(t *testing.T) {
	repo, mock := setupPostgres(t)

	mock.ExpectQuery(`FROM plans WHERE id = \$1`).WithArgs("x").WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresRepository_Create(t *testing.T) {
	repo, mock := setupPostgres(t)
	p := &domain.Plan{ID: "p1", ProjectID: "1", Name: "Team", Price: 10, Frequency: "monthly", Status: "active", Features: []string{"a"}}

	mock.ExpectExec(`INSERT INTO plans`).
		WithArgs("p1", "1", "Team", "", 10.0, "monthly", "active", pq.Array([]string{"a"}), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), p))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_AddSubscribers(t *testing.T) {
	repo, mock := setupPostgres(t)

	mock.ExpectExec(`UPDATE plans SET subscribers`).WithArgs("101", 1).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.AddSubscribers(context.Background(), "101", 1))

	mock.ExpectExec(`UPDATE plans SET subscribers`).WithArgs("nope", 1).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.AddSubscribers(context.Background(), "nope", 1), domain.ErrNotFound)
}
