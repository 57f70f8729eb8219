package services

import (
	"context"

	"github.com/yungbote/forcebook-backend/internal/observability"
	"github.com/yungbote/forcebook-backend/internal/platform/archive"
	"github.com/yungbote/forcebook-backend/internal/platform/ctxutil"
	"github.com/yungbote/forcebook-backend/internal/platform/logger"
	"github.com/yungbote/forcebook-backend/internal/realtime"
	"github.com/yungbote/forcebook-backend/internal/realtime/bus"
)

// EventEmitter delivers a registry event after its write committed. Emit
// never fails the caller; delivery problems are logged by the emitter.
type EventEmitter interface {
	Emit(ctx context.Context, msg realtime.SSEMessage)
}

// HubEmitter broadcasts straight into the local hub (single instance).
type HubEmitter struct{ Hub *realtime.SSEHub }

func (e *HubEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	if e == nil || e.Hub == nil {
		return
	}
	e.Hub.Broadcast(msg)
}

// BusEmitter publishes to the bus; every instance's forwarder feeds its hub.
type BusEmitter struct {
	Bus     bus.Bus
	Log     *logger.Logger
	Metrics *observability.Metrics
}

func (e *BusEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	if e == nil || e.Bus == nil {
		return
	}
	err := e.Bus.Publish(ctx, msg)
	e.Metrics.IncEventPublished(string(msg.Event), err == nil)
	if err != nil && e.Log != nil {
		e.Log.Warn("event publish failed", "event", msg.Event, "channel", msg.Channel, "request_id", ctxutil.RequestID(ctx), "error", err)
	}
}

// ArchiveEmitter appends every event to the zstd JSONL archive.
type ArchiveEmitter struct {
	Writer *archive.JSONLZstdWriter
	Log    *logger.Logger
}

func (e *ArchiveEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	if e == nil || e.Writer == nil {
		return
	}
	if err := e.Writer.Write(msg); err != nil && e.Log != nil {
		e.Log.Warn("event archive write failed", "event", msg.Event, "error", err)
	}
}

// MultiEmitter fans one event out to each emitter in order.
type MultiEmitter []EventEmitter

func (m MultiEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) {
	for _, e := range m {
		if e != nil {
			e.Emit(ctx, msg)
		}
	}
}
