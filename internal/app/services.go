package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/forcebook-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/observability"
	"github.com/yungbote/forcebook-backend/internal/platform/keylock"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
	"github.com/yungbote/forcebook-backend/internal/services"
)

type Aggregates struct {
	Registry    domainagg.RegistryAggregate
	Negotiation domainagg.NegotiationAggregate
	Treason     domainagg.TreasonAggregate
}

type Services struct {
	Rebels  services.RebelService
	Reports services.ReportService
}

// wireAggregates shares one per-rebel lock table across every writer.
func wireAggregates(db *gorm.DB, log *logger.Logger, metrics *observability.Metrics, r Repos) Aggregates {
	log.Info("Wiring aggregates...")
	base := aggregates.BaseDeps{
		DB:    db,
		Log:   log,
		Hooks: aggregates.NewObservabilityHooks(metrics),
		Locks: keylock.New(),
	}
	return Aggregates{
		Registry: aggregates.NewRegistryAggregate(aggregates.RegistryAggregateDeps{
			Base:      base,
			Rebels:    r.Rebel,
			Items:     r.Item,
			Templates: r.ItemTemplate,
		}),
		Negotiation: aggregates.NewNegotiationAggregate(aggregates.NegotiationAggregateDeps{
			Base:      base,
			Rebels:    r.Rebel,
			Items:     r.Item,
			Templates: r.ItemTemplate,
			Reports:   r.TreasonReport,
			Records:   r.NegotiationRecord,
		}),
		Treason: aggregates.NewTreasonAggregate(aggregates.TreasonAggregateDeps{
			Base:    base,
			Rebels:  r.Rebel,
			Reports: r.TreasonReport,
		}),
	}
}

func wireServices(log *logger.Logger, metrics *observability.Metrics, r Repos, aggs Aggregates, emit services.EventEmitter) Services {
	log.Info("Wiring services...")
	return Services{
		Rebels: services.NewRebelService(log, services.RebelServiceDeps{
			Rebels:      r.Rebel,
			Templates:   r.ItemTemplate,
			Reports:     r.TreasonReport,
			Records:     r.NegotiationRecord,
			Registry:    aggs.Registry,
			Negotiation: aggs.Negotiation,
			Treason:     aggs.Treason,
			Notifier:    services.NewRebelNotifier(emit),
			Metrics:     metrics,
		}),
		Reports: services.NewReportService(log, r.Rebel, r.Item, r.ItemTemplate, r.TreasonReport),
	}
}
