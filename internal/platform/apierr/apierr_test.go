package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAsFindsWrappedError(t *testing.T) {
	base := NotFound("rebel_not_found", errors.New("Unable to find rebel named Yoda."))
	wrapped := fmt.Errorf("lookup: %w", base)

	got, ok := As(wrapped)
	if !ok {
		t.Fatalf("expected api error in chain")
	}
	if got.Status != http.StatusNotFound || got.Code != "rebel_not_found" {
		t.Fatalf("unexpected api error: %+v", got)
	}
	if got.Error() != "Unable to find rebel named Yoda." {
		t.Fatalf("message: %q", got.Error())
	}
}

func TestErrorFallsBackToCodeAndStatus(t *testing.T) {
	if got := New(http.StatusConflict, "stale", nil).Error(); got != "stale" {
		t.Fatalf("code fallback: %q", got)
	}
	if got := New(http.StatusTeapot, "", nil).Error(); got != "api error (418)" {
		t.Fatalf("status fallback: %q", got)
	}
}
