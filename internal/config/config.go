package config

import (
	"time"

	env "github.com/Netflix/go-env"
	"go.uber.org/fx"
)

// Config is the process configuration, loaded from environment variables.
type Config struct {
	Addr        string `env:"FACTURA_ADDR,default=:8080"`
	DatabaseDSN string `env:"FACTURA_DB_DSN,default=factura.db"`
	LogLevel    string `env:"FACTURA_LOG_LEVEL,default=info"`

	// PDFEngine is the external conversion binary.
	PDFEngine string `env:"FACTURA_PDF_ENGINE,default=wkhtmltopdf"`

	// ConvertTimeoutSec bounds each conversion attempt.
	ConvertTimeoutSec int `env:"FACTURA_CONVERT_TIMEOUT_SEC,default=20"`

	// ConvertRetries is how many times a failed conversion is retried.
	ConvertRetries int `env:"FACTURA_CONVERT_RETRIES,default=2"`

	// TemplateCacheTTLSec bounds how long compiled templates are cached.
	TemplateCacheTTLSec int `env:"FACTURA_TEMPLATE_CACHE_TTL_SEC,default=300"`

	// TemplateDumpPath enables the opt-in diagnostic dump of compiled
	// template text before evaluation. Empty disables it.
	TemplateDumpPath string `env:"FACTURA_TEMPLATE_DUMP_PATH"`
}

func (c *Config) ConvertTimeout() time.Duration {
	return time.Duration(c.ConvertTimeoutSec) * time.Second
}

func (c *Config) TemplateCacheTTL() time.Duration {
	return time.Duration(c.TemplateCacheTTLSec) * time.Second
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var c Config
	if _, err := env.UnmarshalFromEnviron(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

var Module = fx.Module("config",
	fx.Provide(Load),
)
