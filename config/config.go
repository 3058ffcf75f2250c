package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/jonwraymond/rule34/observe"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds every tunable of the client.
type Config struct {
	BaseURL          string        `env:"RULE34_BASE_URL"           envDefault:"https://api.rule34.xxx/index.php?page=dapi&s=post&q=index"`
	UserAgent        string        `env:"RULE34_USER_AGENT"         envDefault:"rule34-go"`
	RequestTimeout   time.Duration `env:"RULE34_REQUEST_TIMEOUT"    envDefault:"30s"`
	MaxResponseBytes int64         `env:"RULE34_MAX_RESPONSE_BYTES" envDefault:"33554432"`

	// BreakerMaxFailures of zero disables the circuit breaker.
	BreakerMaxFailures  int           `env:"RULE34_BREAKER_MAX_FAILURES"  envDefault:"0"`
	BreakerResetTimeout time.Duration `env:"RULE34_BREAKER_RESET_TIMEOUT" envDefault:"30s"`

	ServiceName      string  `env:"RULE34_SERVICE_NAME"       envDefault:"rule34"`
	ServiceVersion   string  `env:"RULE34_SERVICE_VERSION"`
	TracingEnabled   bool    `env:"RULE34_TRACING_ENABLED"    envDefault:"false"`
	TracingExporter  string  `env:"RULE34_TRACING_EXPORTER"   envDefault:"none"`
	TracingSamplePct float64 `env:"RULE34_TRACING_SAMPLE_PCT" envDefault:"1.0"`
	MetricsEnabled   bool    `env:"RULE34_METRICS_ENABLED"    envDefault:"false"`
	MetricsExporter  string  `env:"RULE34_METRICS_EXPORTER"   envDefault:"none"`
	LoggingEnabled   bool    `env:"RULE34_LOGGING_ENABLED"    envDefault:"true"`
	LogLevel         string  `env:"RULE34_LOG_LEVEL"          envDefault:"info"`
}

// Load parses the process environment and validates the result.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom parses vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return load(env.Options{Environment: vars})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base url: %w", ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base url %q must be an absolute http(s) URL", ErrInvalidConfig, c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout must be positive, got %s", ErrInvalidConfig, c.RequestTimeout)
	}
	if c.MaxResponseBytes <= 0 {
		return fmt.Errorf("%w: max response bytes must be positive, got %d", ErrInvalidConfig, c.MaxResponseBytes)
	}
	if c.BreakerMaxFailures < 0 {
		return fmt.Errorf("%w: breaker max failures must not be negative, got %d", ErrInvalidConfig, c.BreakerMaxFailures)
	}
	if c.BreakerMaxFailures > 0 && c.BreakerResetTimeout <= 0 {
		return fmt.Errorf("%w: breaker reset timeout must be positive, got %s", ErrInvalidConfig, c.BreakerResetTimeout)
	}

	obs := c.Observe()
	if err := obs.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Observe returns the telemetry part of the configuration.
func (c Config) Observe() observe.Config {
	return observe.Config{
		ServiceName: c.ServiceName,
		Version:     c.ServiceVersion,
		Tracing: observe.TracingConfig{
			Enabled:   c.TracingEnabled,
			Exporter:  c.TracingExporter,
			SamplePct: c.TracingSamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  c.MetricsEnabled,
			Exporter: c.MetricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: c.LoggingEnabled,
			Level:   c.LogLevel,
		},
	}
}
