package aggregates

import (
	"strings"
	"time"

	"github.com/yungbote/forcebook-backend/internal/modules/barter"
	"github.com/yungbote/forcebook-backend/internal/observability"
)

// Hooks receives one signal per aggregate write. Conflicts carry a reason so
// a stale negotiation snapshot and a duplicate registration stay apart.
type Hooks interface {
	ObserveOperation(op, status string, dur time.Duration)
	IncConflict(op, reason string)
	IncRetry(op string)
}

type noopHooks struct{}

func (noopHooks) ObserveOperation(string, string, time.Duration) {}
func (noopHooks) IncConflict(string, string)                     {}
func (noopHooks) IncRetry(string)                                {}

type metricsHooks struct {
	metrics *observability.Metrics
}

func NewObservabilityHooks(metrics *observability.Metrics) Hooks {
	if metrics == nil {
		return noopHooks{}
	}
	return metricsHooks{metrics: metrics}
}

func (h metricsHooks) ObserveOperation(op, status string, dur time.Duration) {
	h.metrics.ObserveAggregateOperation(strings.TrimSpace(op), strings.TrimSpace(status), dur)
}

func (h metricsHooks) IncConflict(op, reason string) {
	h.metrics.IncAggregateConflict(strings.TrimSpace(op), strings.TrimSpace(reason))
}

func (h metricsHooks) IncRetry(op string) {
	h.metrics.IncAggregateRetry(strings.TrimSpace(op))
}

// conflictReason is the barter kind behind a conflict, or "conflict" for
// conflicts raised by storage (unique keys, ConflictError).
func conflictReason(err error) string {
	if f, ok := barter.AsFailure(err); ok {
		return string(f.Kind)
	}
	return "conflict"
}
