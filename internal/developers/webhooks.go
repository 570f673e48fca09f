package developers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/itjpay/billing-dashboard/internal/logging"
)

type WebhookService struct {
	mu    sync.RWMutex
	hooks []Webhook
	now   func() time.Time
}

func NewWebhookService(seed []Webhook) *WebhookService {
	return &WebhookService{hooks: append([]Webhook(nil), seed...), now: time.Now}
}

func (s *WebhookService) List(ctx context.Context) []Webhook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Webhook(nil), s.hooks...)
}

// Create registers an active endpoint for the given catalogue events.
func (s *WebhookService) Create(ctx context.Context, rawURL string, events []string) (*Webhook, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	seen := make(map[string]bool, len(events))
	clean := make([]string, 0, len(events))
	for _, e := range events {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		if !knownEvent(e) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, e)
		}
		seen[e] = true
		clean = append(clean, e)
	}
	if len(clean) == 0 {
		return nil, ErrNoEvents
	}

	w := Webhook{
		ID:      uuid.NewString(),
		URL:     u.String(),
		Events:  clean,
		Created: s.now().UTC(),
		Status:  StatusActive,
	}
	s.mu.Lock()
	s.hooks = append(s.hooks, w)
	s.mu.Unlock()
	return &w, nil
}

func (s *WebhookService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.hooks {
		if s.hooks[i].ID == id {
			s.hooks = append(s.hooks[:i], s.hooks[i+1:]...)
			return nil
		}
	}
	return ErrWebhookNotFound
}

// subscribers returns the active hooks listening for event.
func (s *WebhookService) subscribers(event string) []Webhook {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Webhook, 0, 2)
	for _, w := range s.hooks {
		if w.Status != StatusActive {
			continue
		}
		for _, e := range w.Events {
			if e == event {
				out = append(out, w)
				break
			}
		}
	}
	return out
}

// Delivery is the JSON body POSTed to webhook endpoints.
type Delivery struct {
	ID        string    `json:"id"`
	Event     string    `json:"event"`
	CreatedAt time.Time `json:"created_at"`
	Data      any       `json:"data"`
}

// Dispatcher POSTs events to subscribed webhooks.
type Dispatcher struct {
	hooks  *WebhookService
	client *http.Client
}

func NewDispatcher(hooks *WebhookService, client *http.Client) *Dispatcher {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Dispatcher{hooks: hooks, client: client}
}

// Dispatch delivers event to every subscriber and reports how many accepted it
// with a 2xx.
func (d *Dispatcher) Dispatch(ctx context.Context, event string, data any) int {
	log := logging.New(ctx)

	body, err := json.Marshal(Delivery{ID: uuid.NewString(), Event: event, CreatedAt: time.Now().UTC(), Data: data})
	if err != nil {
		log.Error("webhooks.dispatch", err)
		return 0
	}

	delivered := 0
	for _, w := range d.hooks.subscribers(event) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
		if err != nil {
			log.Warnf("webhooks.dispatch", "build request for %s: %v", w.ID, err)
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-ITJ-Event", event)

		resp, err := d.client.Do(req)
		if err != nil {
			log.Warnf("webhooks.dispatch", "deliver %s to %s: %v", event, w.URL, err)
			continue
		}
		resp.Body.Close()
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			delivered++
		} else {
			log.Warnf("webhooks.dispatch", "deliver %s to %s: status %d", event, w.URL, resp.StatusCode)
		}
	}
	return delivered
}
