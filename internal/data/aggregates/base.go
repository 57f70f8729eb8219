package aggregates

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/forcebook-backend/internal/domain/aggregates"
	"github.com/yungbote/forcebook-backend/internal/platform/dbctx"
	"github.com/yungbote/forcebook-backend/internal/platform/keylock"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
)

const tracerName = "forcebook/aggregates"

type BaseDeps struct {
	DB       *gorm.DB
	Log      *logger.Logger
	Runner   TxRunner
	Hooks    Hooks
	CASGuard CASGuard
	// Locks serializes writers per rebel name. Aggregates that touch the
	// same rebels must share one Locker.
	Locks *keylock.Locker
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Log == nil {
		d.Log = logger.NewNop()
	}
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB, d.Log)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.CASGuard.db == nil {
		d.CASGuard = NewCASGuard(d.DB)
	}
	if d.Locks == nil {
		d.Locks = keylock.New()
	}
	return d
}

func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	start := time.Now()
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, op)
	defer span.End()

	err := deps.Runner.InTx(ctx, fn)
	mapped := MapError(op, err)

	status := "success"
	if mapped != nil {
		status = aggregateErrorStatus(mapped)
		if domainagg.IsCode(mapped, domainagg.CodeConflict) {
			deps.Hooks.IncConflict(op, conflictReason(mapped))
		}
		if domainagg.IsCode(mapped, domainagg.CodeRetryable) {
			deps.Hooks.IncRetry(op)
		}
		span.SetStatus(codes.Error, status)
	}
	span.SetAttributes(attribute.String("aggregate.status", status))
	deps.Hooks.ObserveOperation(op, status, time.Since(start))
	return mapped
}

// rejectRead reports a failure found before the write transaction opened,
// so rejected requests show up in the same operation metrics as commits.
func rejectRead(deps BaseDeps, op string, err error, start time.Time) error {
	deps = deps.withDefaults()
	mapped := MapError(op, err)
	if mapped == nil {
		return nil
	}
	if domainagg.IsCode(mapped, domainagg.CodeConflict) {
		deps.Hooks.IncConflict(op, conflictReason(mapped))
	}
	deps.Hooks.ObserveOperation(op, aggregateErrorStatus(mapped), time.Since(start))
	return mapped
}

func aggregateErrorStatus(err error) string {
	if err == nil {
		return "success"
	}
	code := strings.TrimSpace(string(domainagg.CodeOf(err)))
	if code == "" {
		code = strings.TrimSpace(string(domainagg.CodeOf(MapError("aggregate.status", err))))
	}
	if code == "" {
		return "failure"
	}
	return code
}
