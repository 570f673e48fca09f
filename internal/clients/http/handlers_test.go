package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itjpay/billing-dashboard/internal/clients/domain"
	"github.com/itjpay/billing-dashboard/internal/clients/repository"
	"github.com/itjpay/billing-dashboard/internal/clients/service"
	"github.com/itjpay/billing-dashboard/internal/export"
	planrepo "github.com/itjpay/billing-dashboard/internal/plans/repository"
	planservice "github.com/itjpay/billing-dashboard/internal/plans/service"
	projrepo "github.com/itjpay/billing-dashboard/internal/projects/repository"
	projservice "github.com/itjpay/billing-dashboard/internal/projects/service"
	"github.com/itjpay/billing-dashboard/internal/seed"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	projects := projservice.NewProjectService(projrepo.NewMemoryRepository(seed.Projects()))
	plans := planservice.NewPlanService(planrepo.NewMemoryRepository(seed.Plans()), projects)
	h := New(service.NewClientService(repository.NewMemoryRepository(seed.Clients(time.Now())), plans, projects))
	h.Register(r.Group("/projects"))
	h.RegisterTemplate(r.Group("/clients"))
	return r
}

func upload(t *testing.T, r *gin.Engine, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestImportClients(t *testing.T) {
	r := setupRouter()

	rr := upload(t, r, "/projects/1/clients/import", "clients.csv", []byte("Name,Email,Plan ID\nJohn Doe,john@example.com,101"))
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		OK      bool            `json:"ok"`
		Count   int             `json:"count"`
		Clients []domain.Client `json:"clients"`
		Message string          `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Basic SaaS Plan", resp.Clients[0].Plan)
	assert.Equal(t, "1 clients imported successfully from clients.csv", resp.Message)
}

func TestImportClients_Errors(t *testing.T) {
	r := setupRouter()

	rr := upload(t, r, "/projects/1/clients/import", "clients.pdf", []byte("x"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid file type")

	rr = upload(t, r, "/projects/1/clients/import?lang=fr", "clients.csv", []byte("Name,Email,Plan ID\n"))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Aucun client valide")

	rr = upload(t, r, "/projects/1/clients/import", "clients.csv", bytes.Repeat([]byte("a"), domain.MaxImportSize+10))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestAddAndListClients(t *testing.T) {
	r := setupRouter()

	body, _ := json.Marshal(domain.ClientForm{Name: "Ann", Email: "ann@example.com", PlanID: "101"})
	req := httptest.NewRequest(http.MethodPost, "/projects/1/clients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/projects/1/clients?q=ann@", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Ann"`)
	assert.NotContains(t, rr.Body.String(), "John Smith")
}

func TestAddClient_SnakeCaseBody(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/projects/1/clients",
		bytes.NewReader([]byte(`{"name":"Bea","email":"bea@example.com","plan_id":"102"}`)))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, `"plan_id":"102"`)
	assert.Contains(t, body, `"project_id":"1"`)
	assert.Contains(t, body, `"plan":"Pro SaaS Plan"`)
	assert.NotContains(t, body, `"planId"`)
}

func TestExportAndTemplate(t *testing.T) {
	r := setupRouter()

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/projects/2/clients/export", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, export.ContentTypeXLSX, rr.Header().Get("Content-Type"))
	rows, err := export.ReadFirstSheet(rr.Body)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/clients/import-template", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "client-import-template.csv")
	assert.Contains(t, rr.Body.String(), "Name,Email,Plan ID")
}
