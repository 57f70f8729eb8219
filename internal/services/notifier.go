package services

import (
	"context"
	"time"

	"github.com/yungbote/forcebook-backend/internal/realtime"
)

// RebelNotifier turns committed registry changes into feed events.
type RebelNotifier interface {
	Registered(ctx context.Context, rebel RebelView)
	LocationUpdated(ctx context.Context, loc LocationView)
	TreasonReported(ctx context.Context, accuser string, report TreasonView)
	TurnedTraitor(ctx context.Context, name string, reports int)
	NegotiationCompleted(ctx context.Context, n NegotiationView)
}

type rebelNotifier struct {
	emit EventEmitter
	now  func() time.Time
}

func NewRebelNotifier(emit EventEmitter) RebelNotifier {
	return &rebelNotifier{emit: emit, now: time.Now}
}

func (n *rebelNotifier) send(ctx context.Context, event realtime.SSEEvent, data any) {
	if n == nil || n.emit == nil {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.ChannelRebels,
		Event:   event,
		Data:    data,
		At:      n.now().UTC(),
	})
}

func (n *rebelNotifier) Registered(ctx context.Context, rebel RebelView) {
	n.send(ctx, realtime.SSEEventRebelRegistered, rebel)
}

func (n *rebelNotifier) LocationUpdated(ctx context.Context, loc LocationView) {
	n.send(ctx, realtime.SSEEventRebelLocationUpdated, loc)
}

func (n *rebelNotifier) TreasonReported(ctx context.Context, accuser string, report TreasonView) {
	n.send(ctx, realtime.SSEEventTreasonReported, map[string]any{
		"accuser":    accuser,
		"name":       report.Name,
		"reportedBy": report.ReportedBy,
		"isTraitor":  report.IsTraitor,
	})
}

func (n *rebelNotifier) TurnedTraitor(ctx context.Context, name string, reports int) {
	n.send(ctx, realtime.SSEEventRebelTurnedTraitor, map[string]any{
		"name":    name,
		"reports": reports,
	})
}

func (n *rebelNotifier) NegotiationCompleted(ctx context.Context, v NegotiationView) {
	n.send(ctx, realtime.SSEEventNegotiationCompleted, v)
}
