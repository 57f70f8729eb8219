package observability

import (
	"context"
	"testing"
)

func TestOtelConfigNormalized(t *testing.T) {
	got := OtelConfig{
		ServiceName: "  ",
		Endpoint:    " collector:4318 ",
		SampleRatio: 4,
		Headers:     map[string]string{" x-api-key ": " secret ", "empty": " ", "": "v"},
	}.normalized()

	if got.ServiceName != DefaultServiceName {
		t.Fatalf("service name: %q", got.ServiceName)
	}
	if got.Endpoint != "collector:4318" {
		t.Fatalf("endpoint: %q", got.Endpoint)
	}
	if got.SampleRatio != 1 {
		t.Fatalf("sample ratio should clamp to 1, got %v", got.SampleRatio)
	}
	if len(got.Headers) != 1 || got.Headers["x-api-key"] != "secret" {
		t.Fatalf("headers: %v", got.Headers)
	}
	if neg := (OtelConfig{SampleRatio: -0.5}).normalized(); neg.SampleRatio != 0 {
		t.Fatalf("negative ratio should clamp to 0, got %v", neg.SampleRatio)
	}
}

func TestInitOTelDisabledIsNoop(t *testing.T) {
	shutdown := InitOTel(context.Background(), nil, OtelConfig{ServiceName: "forcebook-test"})
	if shutdown == nil {
		t.Fatalf("shutdown must never be nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}
