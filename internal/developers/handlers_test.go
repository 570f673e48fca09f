package developers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/api/http/middleware"
	"github.com/itjpay/billing-dashboard/internal/developers"
	"github.com/itjpay/billing-dashboard/internal/seed"
)

func setupRouter(rpm int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	keys := developers.NewKeyService(seed.APIKeys(time.Now()))
	developers.NewHandler(keys, developers.NewWebhookService(seed.Webhooks())).Register(r.Group("/developers"))

	public := r.Group("/public",
		developers.RequireAPIKey(keys),
		middleware.RateLimitMiddleware(middleware.NewRateLimiter(rpm, rpm), developers.APIKeyID),
	)
	public.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r
}

func send(r *gin.Engine, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestKeysEndpoints(t *testing.T) {
	r := setupRouter(100)

	rr := send(r, http.MethodGet, "/developers/keys", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), seed.DemoProdKey)

	rr = send(r, http.MethodGet, "/developers/keys?reveal=true", nil)
	assert.Contains(t, rr.Body.String(), seed.DemoProdKey)

	rr = send(r, http.MethodPost, "/developers/keys", map[string]string{"name": "CI", "environment": "test"})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"key":"itj_test_`)

	rr = send(r, http.MethodPost, "/developers/keys/1/revoke", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"inactive"`)

	rr = send(r, http.MethodPost, "/developers/keys/99/regenerate", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWebhookEndpoints(t *testing.T) {
	r := setupRouter(100)

	rr := send(r, http.MethodPost, "/developers/webhooks", map[string]any{"url": "https://a.example.com/h", "events": []string{"client.created"}})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = send(r, http.MethodPost, "/developers/webhooks", map[string]any{"url": "https://a.example.com/h", "events": []string{}})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = send(r, http.MethodDelete, "/developers/webhooks/1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = send(r, http.MethodDelete, "/developers/webhooks/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = send(r, http.MethodGet, "/developers/webhooks/events", nil)
	assert.Contains(t, rr.Body.String(), "subscription.created")
	assert.NotContains(t, rr.Body.String(), "subscription.cancelled")
}

func TestPublicAPI_KeyAndRateLimit(t *testing.T) {
	r := setupRouter(3)

	rr := send(r, http.MethodGet, "/public/ping", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = send(r, http.MethodGet, "/public/ping", nil, "Authorization", "Bearer "+seed.DemoTestKey)
	assert.Equal(t, http.StatusUnauthorized, rr.Code, "inactive key")

	for i := 0; i < 3; i++ {
		rr = send(r, http.MethodGet, "/public/ping", nil, "Authorization", "Bearer "+seed.DemoProdKey)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr = send(r, http.MethodGet, "/public/ping", nil, "Authorization", "Bearer "+seed.DemoProdKey)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	// separate bucket per key
	rr = send(r, http.MethodGet, "/public/ping", nil, "Authorization", "Bearer "+seed.DemoDevKey)
	assert.Equal(t, http.StatusOK, rr.Code)
}
