package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backoffice-access/config"
	"backoffice-access/core/access"
	"backoffice-access/core/catalog"
	"backoffice-access/core/links"
	"backoffice-access/core/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySaver struct {
	saved []*links.Assignment
}

func (m *memorySaver) Save(_ context.Context, a *links.Assignment) error {
	m.saved = append(m.saved, a)
	return nil
}

func newTestServer(t *testing.T, cfg *config.AppConfig, saver links.Saver) *Server {
	t.Helper()
	var buf bytes.Buffer
	s, err := NewServer(cfg, utils.NewLoggerWithLevel(&buf, "debug"), ServerDeps{Catalog: catalog.Default(), Saver: saver})
	require.NoError(t, err)
	return s
}

func serve(s *Server, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func TestNewServerRequiresConfig(t *testing.T) {
	_, err := NewServer(nil, nil, ServerDeps{})
	assert.Error(t, err)
}

func TestServerScopesCatalogByAvailableModules(t *testing.T) {
	cfg := &config.AppConfig{AppEnv: "prod", Catalog: config.CatalogConfig{AvailableModules: []string{"comercial", "estoque"}}}
	s := newTestServer(t, cfg, nil)
	rr := serve(s, http.MethodGet, "/api/access/catalog", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var out struct {
		Items []access.ModuleDefinition `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Len(t, out.Items, 2)
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))

	rr = serve(s, http.MethodPost, "/api/access/check", `{"subject":"profile:admin","permission":"rh.ferias.view"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "rh is outside the installation catalog")
}

func TestServerPublishesBuiltInProfiles(t *testing.T) {
	s := newTestServer(t, &config.AppConfig{AppEnv: "prod"}, nil)
	rr := serve(s, http.MethodPost, "/api/access/check", `{"subject":"profile:operator","permission":"estoque.posicao.edit"}`, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"allowed":true`)

	rr = serve(s, http.MethodPost, "/api/access/check", `{"subject":"profile:operator","permission":"comercial.pedidos.view"}`, nil)
	assert.Contains(t, rr.Body.String(), `"allowed":false`, "operator must not reach comercial")
}

func TestServerSaveAssignmentUsesSaver(t *testing.T) {
	saver := &memorySaver{}
	s := newTestServer(t, &config.AppConfig{AppEnv: "prod"}, saver)
	body := `{"username":"bruno","links":[{"company_id":"acme","branch_id":"sp","access":[]}]}`
	rr := serve(s, http.MethodPost, "/api/access/assignments", body, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.Len(t, saver.saved, 1)
	assert.Equal(t, "bruno@acme/sp", saver.saved[0].Links[0].Subject("bruno"))
}

func TestServerRevokeSubjectRoute(t *testing.T) {
	s := newTestServer(t, &config.AppConfig{AppEnv: "prod"}, nil)
	rr := serve(s, http.MethodDelete, "/api/access/subjects/profile:viewer", "", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = serve(s, http.MethodGet, "/api/access/subjects", "", nil)
	assert.NotContains(t, rr.Body.String(), "profile:viewer")
}

func TestServerUnknownAPIRoute(t *testing.T) {
	s := newTestServer(t, &config.AppConfig{AppEnv: "prod"}, nil)
	rr := serve(s, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t, &config.AppConfig{AppEnv: "dev"}, nil)
	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/healthz", "", nil).Code)
	rr := serve(s, http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"modules":6`)
}

func TestCORSOnlyForConfiguredOrigins(t *testing.T) {
	cfg := &config.AppConfig{AppEnv: "prod", CORS: config.CORSConfig{AllowedOrigins: []string{"https://painel.example.com"}}}
	s := newTestServer(t, cfg, nil)
	rr := serve(s, http.MethodGet, "/api/access/profiles", "", map[string]string{"Origin": "https://painel.example.com"})
	assert.Equal(t, "https://painel.example.com", rr.Header().Get("Access-Control-Allow-Origin"))
	rr = serve(s, http.MethodGet, "/api/access/profiles", "", map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
