package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/forcebook-backend/internal/data/db"
	"github.com/yungbote/forcebook-backend/internal/observability"
	"github.com/yungbote/forcebook-backend/internal/platform/config"
)

type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	LogMode string `env:"LOG_MODE" envDefault:"development"`
	Port    string `env:"PORT" envDefault:"8080"`
	Version string `env:"APP_VERSION" envDefault:"dev"`

	DBDriver         string `env:"DB_DRIVER" envDefault:"sqlite"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresName     string `env:"POSTGRES_NAME" envDefault:"forcebook"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	SQLiteDSN        string `env:"SQLITE_DSN" envDefault:"file:forcebook.db"`

	SeedOnStart bool   `env:"SEED_ON_START" envDefault:"true"`
	SeedFile    string `env:"SEED_FILE"`

	RedisAddr    string `env:"REDIS_ADDR"`
	RedisChannel string `env:"REDIS_CHANNEL" envDefault:"forcebook.events"`

	EventArchiveDir string `env:"EVENT_ARCHIVE_DIR"`

	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`

	OTelEnabled     bool              `env:"OTEL_ENABLED" envDefault:"false"`
	OTelServiceName string            `env:"OTEL_SERVICE_NAME" envDefault:"forcebook"`
	OTelEndpoint    string            `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelHeaders     map[string]string `env:"OTEL_EXPORTER_OTLP_HEADERS" envSeparator:"," envKeyValSeparator:"="`
	OTelInsecure    bool              `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	OTelSampleRatio float64           `env:"OTEL_SAMPLER_RATIO" envDefault:"0.1"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:","`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.DBDriver)) {
	case db.DriverSQLite, db.DriverPostgres:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", db.DriverSQLite, db.DriverPostgres, c.DBDriver)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) Otel() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.OTelEnabled,
		ServiceName: c.OTelServiceName,
		Environment: c.Env,
		Version:     c.Version,
		Endpoint:    c.OTelEndpoint,
		Headers:     c.OTelHeaders,
		Insecure:    c.OTelInsecure,
		SampleRatio: c.OTelSampleRatio,
	}
}

func (c Config) DB() db.Config {
	return db.Config{
		Driver: c.DBDriver,
		Postgres: db.PostgresConfig{
			Host:     c.PostgresHost,
			Port:     c.PostgresPort,
			User:     c.PostgresUser,
			Password: c.PostgresPassword,
			Name:     c.PostgresName,
			SSLMode:  c.PostgresSSLMode,
		},
		SQLiteDSN: c.SQLiteDSN,
	}
}
