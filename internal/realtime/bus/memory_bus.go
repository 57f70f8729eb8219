package bus

import (
	"context"
	"fmt"
	"sync"

	"github.com/yungbote/forcebook-backend/internal/realtime"
)

// MemoryBus delivers events inside one process. It is the default when no
// Redis address is configured.
type MemoryBus struct {
	mu     sync.RWMutex
	subs   map[int]func(realtime.SSEMessage)
	next   int
	closed bool
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[int]func(realtime.SSEMessage))}
}

// Publish calls every forwarder synchronously. Forwarders must not block.
func (b *MemoryBus) Publish(ctx context.Context, msg realtime.SSEMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("memory event bus closed")
	}
	for _, fn := range b.subs {
		fn(msg)
	}
	return nil
}

func (b *MemoryBus) StartForwarder(ctx context.Context, onMsg func(m realtime.SSEMessage)) error {
	if onMsg == nil {
		return fmt.Errorf("onMsg callback required")
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("memory event bus closed")
	}
	id := b.next
	b.next++
	b.subs[id] = onMsg
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}()
	return nil
}

func (b *MemoryBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = map[int]func(realtime.SSEMessage){}
	return nil
}
