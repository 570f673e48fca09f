package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientrepo "github.com/itjpay/billing-dashboard/internal/clients/repository"
	payrepo "github.com/itjpay/billing-dashboard/internal/payments/repository"
	planrepo "github.com/itjpay/billing-dashboard/internal/plans/repository"
	projrepo "github.com/itjpay/billing-dashboard/internal/projects/repository"
	"github.com/itjpay/billing-dashboard/internal/seed"
)

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()
	st := &Stores{
		Projects: projrepo.NewMemoryRepository(nil),
		Plans:    planrepo.NewMemoryRepository(nil),
		Clients:  clientrepo.NewMemoryRepository(nil),
		Payments: payrepo.NewMemoryRepository(nil),
	}

	seeded, err := SeedDemoData(ctx, st, time.Now())
	require.NoError(t, err)
	assert.True(t, seeded)

	projects, err := st.Projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, projects, len(seed.Projects()))
	assert.Equal(t, seed.Projects()[0].ID, projects[0].ID)

	clients, _ := st.Clients.List(ctx)
	assert.Len(t, clients, len(seed.Clients(time.Now())))
	payments, _ := st.Payments.List(ctx)
	assert.Len(t, payments, len(seed.Payments()))

	seeded, err = SeedDemoData(ctx, st, time.Now())
	require.NoError(t, err)
	assert.False(t, seeded, "second run is a no-op")
}
