package app

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DBDriver != "sqlite" || cfg.Addr() != ":8080" || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("defaults: %+v", cfg)
	}
	if !cfg.SeedOnStart {
		t.Fatalf("seeding should default on")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("PORT", "127.0.0.1:9000")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key=secret,x-team=rebels")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DB().Postgres.Host != "db.internal" || cfg.Addr() != "127.0.0.1:9000" {
		t.Fatalf("overrides: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("overrides: %+v", cfg)
	}
	otelCfg := cfg.Otel()
	if !otelCfg.Enabled || otelCfg.SampleRatio != 0.5 || otelCfg.ServiceName != "forcebook" {
		t.Fatalf("otel config: %+v", otelCfg)
	}
	if otelCfg.Headers["x-api-key"] != "secret" || otelCfg.Headers["x-team"] != "rebels" {
		t.Fatalf("otel headers: %v", otelCfg.Headers)
	}
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
