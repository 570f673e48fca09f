package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/itjpay/billing-dashboard/internal/logging"
	"github.com/itjpay/billing-dashboard/internal/metrics"
	"github.com/itjpay/billing-dashboard/internal/notifications/domain"
	"github.com/itjpay/billing-dashboard/internal/notifications/repository"
	"github.com/itjpay/billing-dashboard/internal/search"
)

// Publisher fans change events out to stream subscribers.
type Publisher interface {
	Publish(ctx context.Context, ev domain.Event) error
}

type NotificationService struct {
	repo repository.Repository
	pub  Publisher
	now  func() time.Time
}

// NewNotificationService wires the service; pub may be nil.
func NewNotificationService(repo repository.Repository, pub Publisher) *NotificationService {
	return &NotificationService{repo: repo, pub: pub, now: time.Now}
}

func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	return s.repo.List(ctx)
}

// Filter matches title, message or project name. A notification without a
// project name only matches on the other two.
func (s *NotificationService) Filter(ctx context.Context, term string) ([]domain.Notification, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return search.Filter(items, term, func(n domain.Notification) []string {
		fields := []string{n.Title, n.Message}
		if n.ProjectName != nil {
			fields = append(fields, *n.ProjectName)
		}
		return fields
	}), nil
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n, nil
}

// MarkAsRead flags exactly one notification.
func (s *NotificationService) MarkAsRead(ctx context.Context, id string) (*domain.Notification, error) {
	n, err := s.repo.MarkRead(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.EventRead, n)
	return n, nil
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	if err := s.repo.MarkAllRead(ctx); err != nil {
		return err
	}
	s.publish(ctx, domain.EventReadAll, nil)
	return nil
}

// Push stores a new unread notification and broadcasts it.
func (s *NotificationService) Push(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return nil, domain.ErrTitleEmpty
	}
	if n.Type == "" {
		n.Type = domain.TypeInfo
	}
	if !domain.ValidType(n.Type) {
		return nil, domain.ErrInvalidType
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Date.IsZero() {
		n.Date = s.now().UTC()
	}
	n.Read = false

	if err := s.repo.Add(ctx, &n); err != nil {
		return nil, err
	}
	metrics.NotificationsPushed.WithLabelValues(n.Type).Inc()
	s.publish(ctx, domain.EventCreated, &n)
	return &n, nil
}

func (s *NotificationService) publish(ctx context.Context, kind string, n *domain.Notification) {
	if s.pub == nil {
		return
	}
	unread, err := s.UnreadCount(ctx)
	if err != nil {
		unread = 0
	}
	if err := s.pub.Publish(ctx, domain.Event{Kind: kind, Notification: n, Unread: unread}); err != nil {
		logging.New(ctx).Warnf("notifications.publish", "publish %s: %v", kind, err)
	}
}
