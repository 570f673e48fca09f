package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/auth/domain"
	"github.com/itjpay/billing-dashboard/internal/auth/repository"
)

func TestAuthService_Sync(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(repository.NewMemoryRepository())

	_, err := svc.Sync(ctx, domain.SyncRequest{UID: "  "})
	assert.ErrorIs(t, err, domain.ErrUIDRequired)

	name := "Ops"
	first, err := svc.Sync(ctx, domain.SyncRequest{UID: "u1", Email: "ops@acme.io", DisplayName: &name})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, first.Role)

	again, err := svc.Sync(ctx, domain.SyncRequest{UID: "u1", Email: "ops@acme.io"})
	require.NoError(t, err)
	require.NotNil(t, again.DisplayName, "display name survives a sync without one")
	assert.Equal(t, "Ops", *again.DisplayName)
	assert.Equal(t, first.CreatedAt, again.CreatedAt)

	_, err = svc.Update(ctx, "ghost", domain.UpdateRequest{})
	assert.ErrorIs(t, err, domain.ErrAdminNotFound)
}
