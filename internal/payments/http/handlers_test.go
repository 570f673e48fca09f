package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/export"
	"github.com/itjpay/billing-dashboard/internal/payments/domain"
	"github.com/itjpay/billing-dashboard/internal/payments/repository"
	"github.com/itjpay/billing-dashboard/internal/payments/service"
	"github.com/itjpay/billing-dashboard/internal/seed"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(service.NewPaymentService(repository.NewMemoryRepository(seed.Payments()), nil)).Register(r.Group("/payments"))
	return r
}

func TestListPayments(t *testing.T) {
	r := setupRouter()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/payments?q=pro+plan&project_id=3", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Payments []domain.Payment `json:"payments"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Payments, 2)
	assert.Equal(t, "INV-005", resp.Payments[0].ID)
	assert.Equal(t, "INV-008", resp.Payments[1].ID)
}

func TestExportPayments(t *testing.T) {
	r := setupRouter()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/payments/export?q=emily", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, export.ContentTypeXLSX, rr.Header().Get("Content-Type"))

	rows, err := export.ReadFirstSheet(rr.Body)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "INV-004", rows[1][0])
}
