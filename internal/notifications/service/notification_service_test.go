package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/notifications/domain"
	"github.com/itjpay/billing-dashboard/internal/notifications/repository"
	"github.com/itjpay/billing-dashboard/internal/seed"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, ev domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func newService() (*NotificationService, *recordingPublisher) {
	pub := &recordingPublisher{}
	return NewNotificationService(repository.NewMemoryRepository(seed.Notifications(time.Now())), pub), pub
}

func TestNotificationService_Filter(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	got, err := svc.Filter(ctx, "mobile app")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, n := range got {
		assert.Equal(t, "Mobile App Payments", *n.ProjectName)
	}

	got, err = svc.Filter(ctx, "SYSTEM")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "7", got[0].ID)

	got, err = svc.Filter(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 7)
}

func TestNotificationService_MarkAsRead(t *testing.T) {
	svc, pub := newService()
	ctx := context.Background()

	before, err := svc.List(ctx)
	require.NoError(t, err)
	unread, _ := svc.UnreadCount(ctx)
	assert.Equal(t, 3, unread)

	n, err := svc.MarkAsRead(ctx, "4")
	require.NoError(t, err)
	assert.True(t, n.Read)

	after, err := svc.List(ctx)
	require.NoError(t, err)
	for i := range after {
		if after[i].ID == "4" {
			assert.True(t, after[i].Read)
			continue
		}
		assert.Equal(t, before[i], after[i])
	}

	unread, _ = svc.UnreadCount(ctx)
	assert.Equal(t, 2, unread)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventRead, pub.events[0].Kind)
	assert.Equal(t, 2, pub.events[0].Unread)

	_, err = svc.MarkAsRead(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotificationService_MarkAllAsRead(t *testing.T) {
	svc, pub := newService()
	ctx := context.Background()

	require.NoError(t, svc.MarkAllAsRead(ctx))
	unread, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)
	assert.Equal(t, domain.EventReadAll, pub.events[0].Kind)
}

func TestNotificationService_Push(t *testing.T) {
	svc, pub := newService()
	ctx := context.Background()

	n, err := svc.Push(ctx, domain.Notification{Title: "Payment received", Message: "ok", Read: true})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, domain.TypeInfo, n.Type)
	assert.False(t, n.Read)
	assert.False(t, n.Date.IsZero())

	items, _ := svc.List(ctx)
	assert.Equal(t, n.ID, items[0].ID)
	assert.Equal(t, domain.EventCreated, pub.events[0].Kind)
	assert.Equal(t, 4, pub.events[0].Unread)

	_, err = svc.Push(ctx, domain.Notification{Title: " "})
	assert.ErrorIs(t, err, domain.ErrTitleEmpty)
	_, err = svc.Push(ctx, domain.Notification{Title: "x", Type: "critical"})
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}
