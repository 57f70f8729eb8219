package bus

import (
	"context"

	"github.com/yungbote/forcebook-backend/internal/realtime"
)

// Bus fans registry events out to every API instance. Each instance runs a
// forwarder that feeds its local hub.
type Bus interface {
	Publish(ctx context.Context, msg realtime.SSEMessage) error
	StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error
	Close() error
}
