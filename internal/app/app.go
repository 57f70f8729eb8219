package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/forcebook-backend/internal/data/db"
	"github.com/yungbote/forcebook-backend/internal/http"
	"github.com/yungbote/forcebook-backend/internal/observability"
	"github.com/yungbote/forcebook-backend/internal/platform/archive"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
	"github.com/yungbote/forcebook-backend/internal/realtime"
	"github.com/yungbote/forcebook-backend/internal/realtime/bus"
	"github.com/yungbote/forcebook-backend/internal/services"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Server   *http.Server
	SSEHub   *realtime.SSEHub
	Metrics  *observability.Metrics

	bus          bus.Bus
	redisBus     *bus.RedisBus
	archive      *archive.JSONLZstdWriter
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.Info("Starting forcebook", "env", cfg.Env, "db_driver", cfg.DBDriver)

	otelShutdown := observability.InitOTel(context.Background(), log, cfg.Otel())
	metrics := observability.Init(log)

	theDB, err := db.Open(log, cfg.DB())
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init db: %w", err)
	}
	if cfg.SeedOnStart {
		if err := seed(log, theDB, cfg.SeedFile); err != nil {
			log.Sync()
			return nil, err
		}
	}

	a := &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Metrics:      metrics,
		otelShutdown: otelShutdown,
	}

	a.SSEHub = realtime.NewSSEHub(log)
	a.SSEHub.OnDrop(metrics.IncEventDropped)
	emit, err := a.wireEvents()
	if err != nil {
		log.Sync()
		return nil, err
	}

	a.Repos = wireRepos(theDB, log)
	aggs := wireAggregates(theDB, log, metrics, a.Repos)
	a.Services = wireServices(log, metrics, a.Repos, aggs, emit)
	a.Server = wireServer(log, cfg, metrics, wireHandlers(log, theDB, a.Services, a.SSEHub))
	return a, nil
}

// wireEvents picks the Redis bus when REDIS_ADDR is set, else the in-process
// bus, and tees events into the archive when EVENT_ARCHIVE_DIR is set.
func (a *App) wireEvents() (services.EventEmitter, error) {
	if strings.TrimSpace(a.Cfg.RedisAddr) != "" {
		rb, err := bus.NewRedisBus(a.Log, bus.RedisConfig{Addr: a.Cfg.RedisAddr, Channel: a.Cfg.RedisChannel})
		if err != nil {
			return nil, fmt.Errorf("init redis bus: %w", err)
		}
		a.bus = rb
		a.redisBus = rb
	} else {
		a.bus = bus.NewMemoryBus()
	}

	emitters := services.MultiEmitter{&services.BusEmitter{Bus: a.bus, Log: a.Log, Metrics: a.Metrics}}
	if dir := strings.TrimSpace(a.Cfg.EventArchiveDir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("event archive dir: %w", err)
		}
		a.archive = archive.NewJSONLZstdWriter(dir, "events")
		emitters = append(emitters, &services.ArchiveEmitter{Writer: a.archive, Log: a.Log})
	}
	return emitters, nil
}

func seed(log *logger.Logger, theDB *gorm.DB, path string) error {
	raw := db.DefaultSeed()
	if path = strings.TrimSpace(path); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
		raw = b
	}
	data, err := db.ParseSeed(raw)
	if err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Seed(ctx, theDB, log, data); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}

// Start launches the background collectors and the bus forwarder.
func (a *App) Start(ctx context.Context) error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if err := a.bus.StartForwarder(ctx, a.SSEHub.Broadcast); err != nil {
		return fmt.Errorf("start event forwarder: %w", err)
	}
	a.Metrics.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
	a.Metrics.StartDBCollector(ctx, a.Log, a.DB)
	if a.redisBus != nil {
		a.Metrics.StartRedisCollector(ctx, a.Log, a.redisBus.Client())
	}
	return nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	return a.Server.Run(ctx, a.Cfg.Addr(), a.Cfg.ShutdownTimeout)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	var errs []error
	if a.bus != nil {
		errs = append(errs, a.bus.Close())
	}
	if a.archive != nil {
		errs = append(errs, a.archive.Close())
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, a.otelShutdown(ctx))
		cancel()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	if err := errors.Join(errs...); err != nil && a.Log != nil {
		a.Log.Warn("shutdown finished with errors", "error", err)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
