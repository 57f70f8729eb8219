package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/forcebook-backend/internal/http"
	httpH "github.com/yungbote/forcebook-backend/internal/http/handlers"
	"github.com/yungbote/forcebook-backend/internal/observability"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
	"github.com/yungbote/forcebook-backend/internal/realtime"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Rebel    *httpH.RebelHandler
	Report   *httpH.ReportHandler
	Realtime *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services, hub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(db),
		Rebel:    httpH.NewRebelHandler(services.Rebels),
		Report:   httpH.NewReportHandler(services.Reports),
		Realtime: httpH.NewRealtimeHandler(log, hub),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:             log,
		Metrics:         metrics,
		ServiceName:     cfg.OTelServiceName,
		CORSOrigins:     cfg.CORSOrigins,
		HealthHandler:   handlers.Health,
		RebelHandler:    handlers.Rebel,
		ReportHandler:   handlers.Report,
		RealtimeHandler: handlers.Realtime,
	})
}
