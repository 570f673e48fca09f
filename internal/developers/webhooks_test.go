package developers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/developers"
	"github.com/itjpay/billing-dashboard/internal/seed"
)

func TestWebhookService_Create(t *testing.T) {
	svc := developers.NewWebhookService(seed.Webhooks())
	ctx := context.Background()

	w, err := svc.Create(ctx, "https://hooks.example.com/in", []string{"payment.success", "payment.success", " client.created "})
	require.NoError(t, err)
	assert.Equal(t, []string{"payment.success", "client.created"}, w.Events)
	assert.Len(t, svc.List(ctx), 4)

	_, err = svc.Create(ctx, "ftp://example.com", []string{"payment.success"})
	assert.ErrorIs(t, err, developers.ErrInvalidURL)
	_, err = svc.Create(ctx, "/relative", []string{"payment.success"})
	assert.ErrorIs(t, err, developers.ErrInvalidURL)
	_, err = svc.Create(ctx, "https://example.com", nil)
	assert.ErrorIs(t, err, developers.ErrNoEvents)
	_, err = svc.Create(ctx, "https://example.com", []string{"invoice.created"})
	assert.ErrorIs(t, err, developers.ErrUnknownEvent)

	require.NoError(t, svc.Delete(ctx, w.ID))
	assert.ErrorIs(t, svc.Delete(ctx, w.ID), developers.ErrWebhookNotFound)
}

func TestEvents_Catalogue(t *testing.T) {
	names := make([]string, 0, 4)
	for _, e := range developers.Events() {
		names = append(names, e.Name)
		assert.NotEmpty(t, e.Description)
	}
	assert.Equal(t, []string{
		"payment.success", "payment.failed", "subscription.created", "client.created",
	}, names)
}

func TestWebhookService_RejectsEventsNothingRaises(t *testing.T) {
	svc := developers.NewWebhookService(nil)
	for _, e := range []string{"subscription.updated", "subscription.cancelled", "client.updated"} {
		_, err := svc.Create(context.Background(), "https://hooks.example.com/in", []string{e})
		assert.ErrorIs(t, err, developers.ErrUnknownEvent, e)
	}
}

func TestDispatcher_DeliversToSubscribers(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var d developers.Delivery
		if err := json.NewDecoder(r.Body).Decode(&d); err == nil && d.Event == "payment.failed" && r.Header.Get("X-ITJ-Event") == "payment.failed" {
			hits.Add(1)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	hooks := developers.NewWebhookService(nil)
	ctx := context.Background()
	_, err := hooks.Create(ctx, srv.URL+"/a", []string{"payment.failed"})
	require.NoError(t, err)
	_, err = hooks.Create(ctx, srv.URL+"/b", []string{"client.created"})
	require.NoError(t, err)

	d := developers.NewDispatcher(hooks, srv.Client())
	assert.Equal(t, 1, d.Dispatch(ctx, "payment.failed", map[string]string{"id": "INV-9"}))
	assert.Equal(t, int32(1), hits.Load())
	assert.Zero(t, d.Dispatch(ctx, "subscription.created", nil))
}
