package logger

import (
	"strings"
	"testing"
)

func TestScrubRedactsSecretsAndHashesClients(t *testing.T) {
	out := scrub([]interface{}{
		"db_password", "hunter2",
		"client_ip", "10.0.0.7",
		"rebel", "Luke Skywalker",
	})
	if len(out) != 6 {
		t.Fatalf("scrub length: want=6 got=%d", len(out))
	}
	if out[1] != "[REDACTED]" {
		t.Fatalf("password not redacted: %v", out[1])
	}
	hashed, ok := out[3].(string)
	if !ok || !strings.HasPrefix(hashed, "hash:") {
		t.Fatalf("client ip not hashed: %v", out[3])
	}
	if out[5] != "Luke Skywalker" {
		t.Fatalf("plain value changed: %v", out[5])
	}
}

func TestScrubKeepsDanglingKey(t *testing.T) {
	out := scrub([]interface{}{"rebel", "Han Solo", "orphan"})
	if len(out) != 3 || out[2] != "orphan" {
		t.Fatalf("unexpected scrub output: %v", out)
	}
}

func TestNewBuildsDevelopmentAndProduction(t *testing.T) {
	for _, mode := range []string{"development", "production"} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		log.With("component", "test").Debug("hello", "mode", mode)
	}
}
