package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/forcebook-backend/internal/http/handlers"
	httpMW "github.com/yungbote/forcebook-backend/internal/http/middleware"
	"github.com/yungbote/forcebook-backend/internal/observability"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	RebelHandler    *httpH.RebelHandler
	ReportHandler   *httpH.ReportHandler
	RealtimeHandler *httpH.RealtimeHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	// Catalog
	if cfg.RebelHandler != nil {
		api.GET("/items", cfg.RebelHandler.ListItems)
	}

	rebels := api.Group("/rebels")
	{
		// Registry, accusations and barter
		if cfg.RebelHandler != nil {
			rebels.GET("", cfg.RebelHandler.ListRebels)
			rebels.POST("/createRebel", cfg.RebelHandler.CreateRebel)
			rebels.PUT("/updateLocation", cfg.RebelHandler.UpdateLocation)
			rebels.PUT("/reportTreason", cfg.RebelHandler.ReportTreason)
			rebels.PUT("/negotiateItems", cfg.RebelHandler.NegotiateItems)
		}

		// Reports
		if cfg.ReportHandler != nil {
			rebels.GET("/traitorsRate", cfg.ReportHandler.TraitorsRate)
			rebels.GET("/nonTraitorsRate", cfg.ReportHandler.NonTraitorsRate)
			rebels.GET("/rebelsRate", cfg.ReportHandler.NonTraitorsRate)
			rebels.GET("/avgItem", cfg.ReportHandler.AverageItems)
			rebels.GET("/traitorsPoints", cfg.ReportHandler.TraitorsPoints)
			rebels.GET("/stats", cfg.ReportHandler.Stats)
		}

		// Realtime
		if cfg.RealtimeHandler != nil {
			rebels.GET("/events", cfg.RealtimeHandler.Events)
			rebels.GET("/feed", cfg.RealtimeHandler.Feed)
		}

		// Per-rebel reads
		if cfg.RebelHandler != nil {
			rebels.GET("/:name", cfg.RebelHandler.GetRebel)
			rebels.GET("/:name/negotiations", cfg.RebelHandler.ListNegotiations)
		}
	}

	return r
}
