package config

import (
	"fmt"
	"net"
)

var knownLogLevels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

func Validate(cfg *AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if _, _, err := net.SplitHostPort(cfg.ListenAddr); err != nil {
		return fmt.Errorf("listen_addr %q: %w", cfg.ListenAddr, err)
	}
	if _, ok := knownLogLevels[cfg.LogLevel]; !ok {
		return fmt.Errorf("unsupported log_level: %s", cfg.LogLevel)
	}
	if cfg.TLSEnabled && (cfg.TLSCert == "" || cfg.TLSKey == "") {
		return fmt.Errorf("tls_cert and tls_key must be set when tls_enabled=true")
	}
	if cfg.Observability.MetricsEnabled && cfg.Observability.MetricsToken == "" && !cfg.IsDev() {
		return fmt.Errorf("observability.metrics_token must be set outside APP_ENV=dev")
	}
	for _, origin := range cfg.CORS.AllowedOrigins {
		if origin == "*" && !cfg.IsDev() {
			return fmt.Errorf("cors wildcard origin is only allowed in APP_ENV=dev")
		}
	}
	return nil
}
