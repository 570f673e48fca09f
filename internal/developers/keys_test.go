package developers_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/developers"
	"github.com/itjpay/billing-dashboard/internal/seed"
)

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "itj_prod_4f...4ypu", developers.MaskKey(seed.DemoProdKey))
	assert.Equal(t, "short", developers.MaskKey("short"))
}

func TestKeyService_List(t *testing.T) {
	svc := developers.NewKeyService(seed.APIKeys(time.Now()))
	ctx := context.Background()

	masked := svc.List(ctx, false)
	require.Len(t, masked, 3)
	assert.Equal(t, "itj_prod_4f...4ypu", masked[0].Key)

	revealed := svc.List(ctx, true)
	assert.Equal(t, seed.DemoProdKey, revealed[0].Key)
}

func TestKeyService_CreateRegenerateRevoke(t *testing.T) {
	svc := developers.NewKeyService(nil)
	ctx := context.Background()

	k, err := svc.Create(ctx, "CI", "production")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^itj_prod_[a-z2-7]{32}$`), k.Key)
	assert.Equal(t, developers.StatusActive, k.Status)

	again, err := svc.Regenerate(ctx, k.ID)
	require.NoError(t, err)
	assert.NotEqual(t, k.Key, again.Key)
	assert.Equal(t, developers.EnvProduction, again.Environment)

	_, err = svc.Authenticate(ctx, k.Key)
	assert.ErrorIs(t, err, developers.ErrUnauthorized, "old secret must stop working")

	got, err := svc.Authenticate(ctx, again.Key)
	require.NoError(t, err)
	require.NotNil(t, got.LastUsed)

	_, err = svc.Revoke(ctx, k.ID)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, again.Key)
	assert.ErrorIs(t, err, developers.ErrUnauthorized)

	_, err = svc.Create(ctx, " ", "dev")
	assert.ErrorIs(t, err, developers.ErrNameRequired)
	_, err = svc.Create(ctx, "x", "staging")
	assert.ErrorIs(t, err, developers.ErrInvalidEnv)
	_, err = svc.Revoke(ctx, "missing")
	assert.ErrorIs(t, err, developers.ErrKeyNotFound)
}

func TestKeyService_InactiveSeedKeyIsRejected(t *testing.T) {
	svc := developers.NewKeyService(seed.APIKeys(time.Now()))
	_, err := svc.Authenticate(context.Background(), seed.DemoTestKey)
	assert.ErrorIs(t, err, developers.ErrUnauthorized)
}
