package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/itjpay/billing-dashboard/internal/notifications/domain"
)

const (
	notifKeyPrefix = "notif:item:" // notif:item:{id} -> JSON
	notifIndexKey  = "notif:index" // sorted set of ids scored by date
)

// RedisRepository stores notifications as JSON blobs indexed by a sorted set.
type RedisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

// Seed loads the demo notifications when the index is empty.
func (r *RedisRepository) Seed(ctx context.Context, items []domain.Notification) error {
	n, err := r.client.ZCard(ctx, notifIndexKey).Result()
	if err != nil {
		return fmt.Errorf("failed to count notifications: %w", err)
	}
	if n > 0 {
		return nil
	}
	for i := range items {
		if err := r.Add(ctx, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *RedisRepository) List(ctx context.Context) ([]domain.Notification, error) {
	ids, err := r.client.ZRevRange(ctx, notifIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Notification{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}

	out := make([]domain.Notification, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // index entry without a body
		}
		var n domain.Notification
		if err := json.Unmarshal([]byte(s), &n); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *RedisRepository) Add(ctx context.Context, n *domain.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(n.ID), data, 0)
	pipe.ZAdd(ctx, notifIndexKey, redis.Z{Score: float64(n.Date.UnixNano()), Member: n.ID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add notification: %w", err)
	}
	return nil
}

func (r *RedisRepository) get(ctx context.Context, id string) (*domain.Notification, error) {
	data, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	var n domain.Notification
	if err := json.Unmarshal([]byte(data), &n); err != nil {
		return nil, fmt.Errorf("failed to unmarshal notification: %w", err)
	}
	return &n, nil
}

func (r *RedisRepository) MarkRead(ctx context.Context, id string) (*domain.Notification, error) {
	n, err := r.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Read {
		return n, nil
	}
	n.Read = true
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := r.client.Set(ctx, r.key(id), data, 0).Err(); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return n, nil
}

func (r *RedisRepository) MarkAllRead(ctx context.Context) error {
	items, err := r.List(ctx)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pending := 0
	for _, n := range items {
		if n.Read {
			continue
		}
		pending++
		n.Read = true
		data, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("failed to marshal notification: %w", err)
		}
		pipe.Set(ctx, r.key(n.ID), data, 0)
	}
	if pending == 0 {
		return nil
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}
	return nil
}

func (r *RedisRepository) key(id string) string {
	return notifKeyPrefix + id
}
