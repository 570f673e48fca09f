package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/plans/domain"
	"github.com/itjpay/billing-dashboard/internal/plans/repository"
	projdomain "github.com/itjpay/billing-dashboard/internal/projects/domain"
	projrepo "github.com/itjpay/billing-dashboard/internal/projects/repository"
	projservice "github.com/itjpay/billing-dashboard/internal/projects/service"
	"github.com/itjpay/billing-dashboard/internal/seed"
)

func newService() *PlanService {
	projects := projservice.NewProjectService(projrepo.NewMemoryRepository(seed.Projects()))
	return NewPlanService(repository.NewMemoryRepository(seed.Plans()), projects)
}

func TestPlanService_ListByProject(t *testing.T) {
	svc := newService()

	got, err := svc.ListByProject(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Basic SaaS Plan", got[0].Name)

	_, err = svc.ListByProject(context.Background(), "nope")
	assert.ErrorIs(t, err, projdomain.ErrNotFound)
}

func TestPlanService_Filter(t *testing.T) {
	svc := newService()

	got, err := svc.Filter(context.Background(), "2", "GROWING")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "202", got[0].ID)

	got, err = svc.Filter(context.Background(), "2", "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPlanService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults and features", func(t *testing.T) {
		svc := newService()
		p, err := svc.Create(ctx, "1", domain.CreatePlanRequest{
			Name:     "  Team Plan ",
			Price:    249,
			Features: "Unlimited seats, , SSO ,Audit log",
		})
		require.NoError(t, err)
		assert.Equal(t, "Team Plan", p.Name)
		assert.Equal(t, domain.FrequencyMonthly, p.Frequency)
		assert.Equal(t, domain.StatusActive, p.Status)
		assert.Zero(t, p.Subscribers)
		assert.Equal(t, []string{"Unlimited seats", "SSO", "Audit log"}, p.Features)

		all, err := svc.ListByProject(ctx, "1")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("validation", func(t *testing.T) {
		svc := newService()
		_, err := svc.Create(ctx, "1", domain.CreatePlanRequest{Name: ""})
		assert.ErrorIs(t, err, domain.ErrNameRequired)

		_, err = svc.Create(ctx, "1", domain.CreatePlanRequest{Name: "x", Price: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidPrice)

		_, err = svc.Create(ctx, "1", domain.CreatePlanRequest{Name: "x", Frequency: "weekly"})
		assert.ErrorIs(t, err, domain.ErrInvalidFrequency)

		_, err = svc.Create(ctx, "missing", domain.CreatePlanRequest{Name: "x"})
		assert.ErrorIs(t, err, projdomain.ErrNotFound)
	})
}

func TestPlanService_AddSubscribers(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	require.NoError(t, svc.AddSubscribers(ctx, "101", 2))
	p, err := svc.Get(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, 47, p.Subscribers)

	assert.ErrorIs(t, svc.AddSubscribers(ctx, "999", 1), domain.ErrNotFound)
}

func TestParseFeatures(t *testing.T) {
	assert.Empty(t, ParseFeatures(""))
	assert.Equal(t, []string{"a", "b"}, ParseFeatures(" a ,b,"))
}
