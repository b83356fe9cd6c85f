package config

type AppConfig struct {
	ListenAddr    string              `yaml:"listen_addr" env:"BACKOFFICE_LISTEN_ADDR" env-default:"0.0.0.0:8080"`
	AppEnv        string              `yaml:"app_env" env:"BACKOFFICE_APP_ENV" env-default:"prod"`
	LogLevel      string              `yaml:"log_level" env:"BACKOFFICE_LOG_LEVEL" env-default:"info"`
	TLSEnabled    bool                `yaml:"tls_enabled" env:"BACKOFFICE_TLS_ENABLED"`
	TLSCert       string              `yaml:"tls_cert" env:"BACKOFFICE_TLS_CERT"`
	TLSKey        string              `yaml:"tls_key" env:"BACKOFFICE_TLS_KEY"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Observability ObservabilityConfig `yaml:"observability"`
	CORS          CORSConfig          `yaml:"cors"`
}

func (c *AppConfig) IsDev() bool {
	if c == nil {
		return false
	}
	return c.AppEnv == "dev"
}

type CatalogConfig struct {
	// Path to a YAML module catalog; empty means the built-in catalog.
	Path string `yaml:"path" env:"BACKOFFICE_CATALOG_PATH"`
	// AvailableModules is the installation-wide allow-list (modulosDisponiveis).
	AvailableModules []string `yaml:"available_modules" env:"BACKOFFICE_AVAILABLE_MODULES" env-separator:","`
}

type ObservabilityConfig struct {
	MetricsEnabled bool   `yaml:"metrics_enabled" env:"BACKOFFICE_METRICS_ENABLED"`
	MetricsToken   string `yaml:"metrics_token" env:"BACKOFFICE_METRICS_TOKEN"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"BACKOFFICE_CORS_ALLOWED_ORIGINS" env-separator:","`
}
