package observe

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// TestConfigValidate_Valid verifies that a fully valid config passes validation.
func TestConfigValidate_Valid(t *testing.T) {
	cfg := Config{
		ServiceName: "test-service",
		Version:     "1.0.0",
		Tracing: TracingConfig{
			Enabled:   true,
			Exporter:  "stdout",
			SamplePct: 1.0,
		},
		Metrics: MetricsConfig{
			Enabled:  true,
			Exporter: "stdout",
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

// TestConfigValidate_Errors verifies each invalid setting is rejected with its sentinel.
func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErr  error
		wantText string
	}{
		{
			name:     "missing service name",
			cfg:      Config{},
			wantErr:  ErrMissingServiceName,
			wantText: "service name",
		},
		{
			name: "unknown tracing exporter",
			cfg: Config{
				ServiceName: "test-service",
				Tracing:     TracingConfig{Enabled: true, Exporter: "unknown"},
			},
			wantErr:  ErrInvalidTracingExporter,
			wantText: "unknown tracing exporter",
		},
		{
			name: "unknown metrics exporter",
			cfg: Config{
				ServiceName: "test-service",
				Metrics:     MetricsConfig{Enabled: true, Exporter: "badvalue"},
			},
			wantErr:  ErrInvalidMetricsExporter,
			wantText: "unknown metrics exporter",
		},
		{
			name: "sample pct above range",
			cfg: Config{
				ServiceName: "test-service",
				Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 1.5},
			},
			wantErr:  ErrInvalidSamplePct,
			wantText: "sample percentage",
		},
		{
			name: "sample pct negative",
			cfg: Config{
				ServiceName: "test-service",
				Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: -0.1},
			},
			wantErr:  ErrInvalidSamplePct,
			wantText: "sample percentage",
		},
		{
			name: "unknown log level",
			cfg: Config{
				ServiceName: "test-service",
				Logging:     LoggingConfig{Enabled: true, Level: "badlevel"},
			},
			wantErr:  ErrInvalidLogLevel,
			wantText: "unknown log level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(strings.ToLower(err.Error()), tt.wantText) {
				t.Errorf("expected error to contain %q, got: %v", tt.wantText, err)
			}
		})
	}
}

// TestConfigValidate_DisabledSubsystemsIgnored verifies disabled sections are not validated.
func TestConfigValidate_DisabledSubsystemsIgnored(t *testing.T) {
	cfg := Config{
		ServiceName: "test-service",
		Tracing:     TracingConfig{Enabled: false, Exporter: "bogus"},
		Metrics:     MetricsConfig{Enabled: false, Exporter: "bogus"},
		Logging:     LoggingConfig{Enabled: false, Level: "bogus"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
}

// TestNewObserver_DisabledNoop verifies that all-disabled config returns no-op observer.
func TestNewObserver_DisabledNoop(t *testing.T) {
	cfg := Config{ServiceName: "test-service"}

	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if obs.Tracer() == nil {
		t.Error("expected non-nil tracer (noop)")
	}
	if obs.Meter() == nil {
		t.Error("expected non-nil meter (noop)")
	}
	if obs.Logger() == nil {
		t.Error("expected non-nil logger (noop)")
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("noop shutdown should not fail, got: %v", err)
	}
}

// TestNewObserver_ReturnsTracerAndMeter verifies enabled config returns functional tracer/meter.
func TestNewObserver_ReturnsTracerAndMeter(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{
		ServiceName: "test-service",
		Version:     "1.0.0",
		Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 1.0},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "stdout"},
		Output:      &out,
	}

	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	defer func() { _ = obs.Shutdown(context.Background()) }()

	if obs.Tracer() == nil {
		t.Error("expected non-nil tracer")
	}
	if obs.Meter() == nil {
		t.Error("expected non-nil meter")
	}
}

// TestNewObserver_LoggerWritesToOutput verifies the logger honors Config.Output.
func TestNewObserver_LoggerWritesToOutput(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{
		ServiceName: "test-service",
		Logging:     LoggingConfig{Enabled: true, Level: "info"},
		Output:      &out,
	}

	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	obs.Logger().Info(context.Background(), "hello")
	if !strings.Contains(out.String(), `"msg":"hello"`) {
		t.Errorf("expected log line in output, got: %q", out.String())
	}
}

// TestNewObserver_InvalidConfigReturnsError verifies that invalid config returns error.
func TestNewObserver_InvalidConfigReturnsError(t *testing.T) {
	_, err := NewObserver(context.Background(), Config{})
	if !errors.Is(err, ErrMissingServiceName) {
		t.Fatalf("expected ErrMissingServiceName, got: %v", err)
	}
}

// TestObserver_ShutdownGracefully verifies shutdown flushes without error.
func TestObserver_ShutdownGracefully(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{
		ServiceName: "test-service",
		Tracing:     TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 1.0},
		Metrics:     MetricsConfig{Enabled: true, Exporter: "stdout"},
		Output:      &out,
	}

	obs, err := NewObserver(context.Background(), cfg)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if err := obs.Shutdown(context.Background()); err != nil {
		t.Errorf("expected no shutdown error, got: %v", err)
	}
}
