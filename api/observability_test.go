package api

import (
	"net/http"
	"testing"

	"backoffice-access/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsEndpointDisabledByDefault(t *testing.T) {
	s := newTestServer(t, &config.AppConfig{AppEnv: "prod"}, nil)
	rr := serve(s, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMetricsEndpointRequiresTokenOutsideDev(t *testing.T) {
	cfg := &config.AppConfig{AppEnv: "prod", Observability: config.ObservabilityConfig{MetricsEnabled: true}}
	s := newTestServer(t, cfg, nil)
	rr := serve(s, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMetricsEndpointAllowsUnauthInDev(t *testing.T) {
	cfg := &config.AppConfig{AppEnv: "dev", Observability: config.ObservabilityConfig{MetricsEnabled: true}}
	s := newTestServer(t, cfg, nil)
	rr := serve(s, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestMetricsEndpointWithTokenExposesAccessMetrics(t *testing.T) {
	cfg := &config.AppConfig{AppEnv: "prod", Observability: config.ObservabilityConfig{MetricsEnabled: true, MetricsToken: "s3cret"}}
	s := newTestServer(t, cfg, nil)
	rr := serve(s, http.MethodPost, "/api/access/profiles/viewer/apply", "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = serve(s, http.MethodGet, "/metrics", "", map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = serve(s, http.MethodGet, "/metrics", "", map[string]string{"Authorization": "Bearer s3cret"})
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	for _, want := range []string{
		"backoffice_uptime_seconds",
		`backoffice_access_profiles_applied_total{profile="viewer"} 1`,
		`backoffice_access_commands_total{kind="apply_profile"} 1`,
		"backoffice_catalog_modules 6",
		"backoffice_policy_subjects 5",
	} {
		assert.Contains(t, body, want)
	}
}
