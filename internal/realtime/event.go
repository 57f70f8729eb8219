package realtime

import "time"

type SSEEvent string

const (
	SSEEventRebelRegistered      SSEEvent = "rebel.registered"
	SSEEventRebelLocationUpdated SSEEvent = "rebel.location_updated"
	SSEEventTreasonReported      SSEEvent = "treason.reported"
	SSEEventRebelTurnedTraitor   SSEEvent = "rebel.turned_traitor"
	SSEEventNegotiationCompleted SSEEvent = "negotiation.completed"
)

// ChannelRebels carries every registry event; feed clients subscribe to it.
const ChannelRebels = "rebels"

type SSEMessage struct {
	Channel string    `json:"channel"`
	Event   SSEEvent  `json:"event"`
	Data    any       `json:"data,omitempty"`
	At      time.Time `json:"at"`
}
