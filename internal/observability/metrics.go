package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/forcebook-backend/internal/platform/envutil"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqTotal *Counter
	apiReqError *Counter
	apiStreams  *CounterVec

	aggregateOps       *CounterVec
	aggregateLatency   *HistogramVec
	aggregateConflicts *CounterVec
	aggregateRetries   *CounterVec

	negotiations      *CounterVec
	negotiationPoints *HistogramVec
	treasonReports    *Counter
	traitorsTurned    *Counter
	rebelsRegistered  *Counter

	eventsPublished *CounterVec
	eventsDropped   *CounterVec

	dbStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge

	all []collector
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	return envutil.Bool("METRICS_ENABLED", false)
}

func Current() *Metrics {
	return instance
}

func scrapeInterval() time.Duration {
	n := envutil.Int("METRICS_SCRAPE_INTERVAL_SECONDS", 10)
	if n <= 0 {
		n = 10
	}
	return time.Duration(n) * time.Second
}

// Init returns the process-wide registry, or nil when METRICS_ENABLED is off.
// Every method on *Metrics is nil-safe.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = New()
		if log != nil {
			log.Info("metrics initialized", "scrape_interval", scrapeInterval().String())
		}
	})
	return instance
}

// New builds an unregistered metric set. Init wraps it in a singleton.
func New() *Metrics {
	latency := []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}
	m := &Metrics{
		apiRequests: NewCounterVec("fb_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"fb_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			latency,
		),
		apiInflight: NewGauge("fb_api_inflight_requests", "In-flight API requests."),
		apiReqTotal: NewCounter("fb_api_requests_total_all", "Total API requests (all)."),
		apiReqError: NewCounter("fb_api_requests_error_total", "API requests answered with a 5xx status."),
		apiStreams:  NewCounterVec("fb_api_streams_total", "Live event streams opened, by route.", []string{"route"}),

		aggregateOps: NewCounterVec("fb_aggregate_operations_total", "Aggregate operations by name/status.", []string{"operation", "status"}),
		aggregateLatency: NewHistogramVec(
			"fb_aggregate_operation_duration_seconds",
			"Aggregate operation latency in seconds by name/status.",
			[]string{"operation", "status"},
			latency,
		),
		aggregateConflicts: NewCounterVec("fb_aggregate_conflicts_total", "Aggregate operations rejected by a conflict, by reason.", []string{"operation", "reason"}),
		aggregateRetries:   NewCounterVec("fb_aggregate_retries_total", "Aggregate operations failed with a retryable error.", []string{"operation"}),

		negotiations: NewCounterVec("fb_negotiations_total", "Negotiations by outcome (committed or a rejection kind).", []string{"outcome"}),
		negotiationPoints: NewHistogramVec(
			"fb_negotiation_points",
			"Point value of each committed negotiation leg.",
			nil,
			[]float64{1, 2, 5, 10, 20, 50, 100, 250},
		),
		treasonReports:   NewCounter("fb_treason_reports_total", "Accepted treason reports."),
		traitorsTurned:   NewCounter("fb_traitors_turned_total", "Rebels that crossed the traitor threshold."),
		rebelsRegistered: NewCounter("fb_rebels_registered_total", "Rebels registered."),

		eventsPublished: NewCounterVec("fb_events_published_total", "Domain events handed to the bus by event/status.", []string{"event", "status"}),
		eventsDropped:   NewCounterVec("fb_events_dropped_total", "Live feed messages dropped for slow subscribers.", []string{"channel"}),

		dbStats:   NewGaugeVec("fb_db_pool", "Database connection pool stats.", []string{"stat"}),
		redisUp:   NewGauge("fb_redis_up", "Redis reachability (1 up, 0 down)."),
		redisPing: NewGauge("fb_redis_ping_seconds", "Redis ping latency in seconds."),
	}
	m.all = []collector{
		m.apiRequests, m.apiLatency, m.apiInflight, m.apiReqTotal, m.apiReqError, m.apiStreams,
		m.aggregateOps, m.aggregateLatency, m.aggregateConflicts, m.aggregateRetries,
		m.negotiations, m.negotiationPoints, m.treasonReports, m.traitorsTurned, m.rebelsRegistered,
		m.eventsPublished, m.eventsDropped,
		m.dbStats, m.redisUp, m.redisPing,
	}
	return m
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range m.all {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
	m.apiReqTotal.Inc()
	if isServerErrorStatus(status) {
		m.apiReqError.Inc()
	}
}

func (m *Metrics) IncAPIStream(route string) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unknown"
	}
	m.apiStreams.Inc(route)
}

// APIRequests reads the request counter for one method/route/status.
func (m *Metrics) APIRequests(method, route, status string) float64 {
	if m == nil {
		return 0
	}
	return m.apiRequests.Value(method, route, status)
}

// APIStreams reads the stream counter for one route.
func (m *Metrics) APIStreams(route string) float64 {
	if m == nil {
		return 0
	}
	return m.apiStreams.Value(route)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAggregateOperation(name, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if name == "" {
		name = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	m.aggregateOps.Inc(name, status)
	m.aggregateLatency.Observe(dur.Seconds(), name, status)
}

func (m *Metrics) IncAggregateConflict(name, reason string) {
	if m == nil {
		return
	}
	if name == "" {
		name = "unknown"
	}
	if reason == "" {
		reason = "conflict"
	}
	m.aggregateConflicts.Inc(name, reason)
}

func (m *Metrics) IncAggregateRetry(name string) {
	if m == nil {
		return
	}
	if name == "" {
		name = "unknown"
	}
	m.aggregateRetries.Inc(name)
}

// ObserveNegotiation counts one negotiation attempt. outcome is "committed" or
// the rejection kind; points is the per-leg value and only recorded on commit.
func (m *Metrics) ObserveNegotiation(outcome string, points int) {
	if m == nil {
		return
	}
	outcome = strings.TrimSpace(outcome)
	if outcome == "" {
		outcome = "unknown"
	}
	m.negotiations.Inc(outcome)
	if outcome == "committed" {
		m.negotiationPoints.Observe(float64(points))
	}
}

func (m *Metrics) IncTreasonReport(turnedTraitor bool) {
	if m == nil {
		return
	}
	m.treasonReports.Inc()
	if turnedTraitor {
		m.traitorsTurned.Inc()
	}
}

func (m *Metrics) IncRebelRegistered() {
	if m == nil {
		return
	}
	m.rebelsRegistered.Inc()
}

func (m *Metrics) IncEventPublished(event string, ok bool) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "failed"
	}
	m.eventsPublished.Inc(event, status)
}

func (m *Metrics) IncEventDropped(channel string) {
	if m == nil {
		return
	}
	if channel == "" {
		channel = "unknown"
	}
	m.eventsDropped.Inc(channel)
}

// StartDBCollector samples the sql.DB pool behind db until ctx ends. It works
// the same for the postgres and sqlite dialectors.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.collectDBStats(log, db)
			}
		}
	}()
}

func (m *Metrics) collectDBStats(log *logger.Logger, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		if log != nil {
			log.Warn("metrics: db stats unavailable", "error", err)
		}
		return
	}
	stats := sqlDB.Stats()
	m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
	m.dbStats.Set(float64(stats.InUse), "in_use")
	m.dbStats.Set(float64(stats.Idle), "idle")
	m.dbStats.Set(float64(stats.WaitCount), "wait_count")
	m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
	m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
}

// StartRedisCollector pings rdb on every scrape interval. The client is owned
// by the caller.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb redis.UniversalClient) {
	if m == nil || rdb == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
