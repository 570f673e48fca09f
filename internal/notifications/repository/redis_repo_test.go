package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/notifications/domain"
	"github.com/itjpay/billing-dashboard/internal/seed"
)

func setupRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisRepository_SeedAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewRedisRepository(setupRedis(t))
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Seed(ctx, seed.Notifications(now)))
	// second seed is a no-op
	require.NoError(t, repo.Seed(ctx, seed.Notifications(now)))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 7)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "7", items[6].ID)
	assert.Nil(t, items[6].ProjectName)
	require.NotNil(t, items[0].ProjectName)
	assert.Equal(t, "SaaS Platform", *items[0].ProjectName)
}

func TestRedisRepository_MarkRead(t *testing.T) {
	ctx := context.Background()
	repo := NewRedisRepository(setupRedis(t))
	require.NoError(t, repo.Seed(ctx, seed.Notifications(time.Now())))

	n, err := repo.MarkRead(ctx, "2")
	require.NoError(t, err)
	assert.True(t, n.Read)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	for _, it := range items {
		switch it.ID {
		case "2":
			assert.True(t, it.Read)
		case "1", "4":
			assert.False(t, it.Read, "notification %s", it.ID)
		}
	}

	_, err = repo.MarkRead(ctx, "404")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.MarkAllRead(ctx))
	items, err = repo.List(ctx)
	require.NoError(t, err)
	for _, it := range items {
		assert.True(t, it.Read)
	}
	require.NoError(t, repo.MarkAllRead(ctx))
}

func TestRedisPublisher_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pub := NewRedisPublisher(setupRedis(t))

	got := make(chan domain.Event, 1)
	require.NoError(t, pub.Subscribe(ctx, func(ev domain.Event) { got <- ev }))

	require.NoError(t, pub.Publish(ctx, domain.Event{Kind: domain.EventReadAll, Unread: 0}))

	select {
	case ev := <-got:
		assert.Equal(t, domain.EventReadAll, ev.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}
