package testutil

import (
	"testing"
	"time"
)

func TestHooksRecorder_CapturesSignals(t *testing.T) {
	h := &HooksRecorder{}
	h.ObserveOperation("rebels.negotiation.negotiate", "success", 10*time.Millisecond)
	h.ObserveOperation("rebels.negotiation.negotiate", "conflict", time.Millisecond)
	h.ObserveOperation("rebels.treason.report", "success", time.Millisecond)
	h.IncConflict("rebels.negotiation.negotiate", "concurrent_modification")
	h.IncRetry("rebels.treason.report")

	got := h.Statuses("rebels.negotiation.negotiate")
	if len(got) != 2 || got[0] != "success" || got[1] != "conflict" {
		t.Fatalf("unexpected statuses: %v", got)
	}
	if h.ConflictCount() != 1 || h.Reasons[0] != "concurrent_modification" {
		t.Fatalf("unexpected conflicts: %+v %+v", h.Conflicts, h.Reasons)
	}
	if len(h.Retries) != 1 || h.Retries[0] != "rebels.treason.report" {
		t.Fatalf("unexpected retries: %+v", h.Retries)
	}
}
