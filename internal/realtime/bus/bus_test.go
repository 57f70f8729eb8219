package bus

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yungbote/forcebook-backend/internal/platform/logger"
	"github.com/yungbote/forcebook-backend/internal/realtime"
)

var (
	_ Bus = (*MemoryBus)(nil)
	_ Bus = (*RedisBus)(nil)
)

func TestMemoryBusForwardsUntilCancelled(t *testing.T) {
	b := NewMemoryBus()
	ctx, cancel := context.WithCancel(context.Background())

	got := make(chan realtime.SSEMessage, 4)
	if err := b.StartForwarder(ctx, func(m realtime.SSEMessage) { got <- m }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	msg := realtime.SSEMessage{Channel: realtime.ChannelRebels, Event: realtime.SSEEventRebelRegistered}
	if err := b.Publish(context.Background(), msg); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case m := <-got:
		if m.Event != realtime.SSEEventRebelRegistered {
			t.Fatalf("event: %s", m.Event)
		}
	case <-time.After(time.Second):
		t.Fatalf("message not forwarded")
	}

	cancel()
	deadline := time.Now().Add(time.Second)
	for {
		b.mu.RLock()
		n := len(b.subs)
		b.mu.RUnlock()
		if n == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("forwarder not removed after cancel")
		}
		time.Sleep(5 * time.Millisecond)
	}

	_ = b.Close()
	if err := b.Publish(context.Background(), msg); err == nil {
		t.Fatalf("publish after close should fail")
	}
}

func TestRedisBusRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis bus tests")
	}
	b, err := NewRedisBus(logger.NewNop(), RedisConfig{Addr: addr, Channel: "forcebook.test." + t.Name()})
	if err != nil {
		t.Fatalf("NewRedisBus: %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	got := make(chan realtime.SSEMessage, 1)
	if err := b.StartForwarder(ctx, func(m realtime.SSEMessage) { got <- m }); err != nil {
		t.Fatalf("StartForwarder: %v", err)
	}
	if err := b.Publish(ctx, realtime.SSEMessage{Channel: realtime.ChannelRebels, Event: realtime.SSEEventTreasonReported}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	select {
	case m := <-got:
		if m.Event != realtime.SSEEventTreasonReported {
			t.Fatalf("event: %s", m.Event)
		}
	case <-ctx.Done():
		t.Fatalf("timed out waiting for redis message")
	}
}

func TestNewRedisBusRequiresAddr(t *testing.T) {
	if _, err := NewRedisBus(logger.NewNop(), RedisConfig{}); err == nil {
		t.Fatalf("expected error without address")
	}
	if _, err := NewRedisBus(nil, RedisConfig{Addr: "localhost:6379"}); err == nil {
		t.Fatalf("expected error without logger")
	}
}
