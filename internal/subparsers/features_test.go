package subparsers

import (
	"testing"

	"github.com/mbonnet/astgraph/internal/callgraph"
)

func TestFeaturesCRecordsPickupAttempt(t *testing.T) {
	store := callgraph.NewStore()
	line := []byte("features.c: Executing pickup SIP/100-0001 triggered, attempt by SIP/200-0002")
	pos := modulePos(line, "features.c:") + 1

	FeaturesC(store, 42, line, pos, "when", nil)

	attempt, ok := store.PickupChans["SIP/200-0002"]
	if !ok {
		t.Fatal("FeaturesC should record a pickup attempt keyed by the attempting channel")
	}
	if attempt.LineNo != 42 {
		t.Errorf("LineNo = %d, want 42", attempt.LineNo)
	}
	if string(attempt.RingingChan) != "SIP/100-0001" {
		t.Errorf("RingingChan = %q, want %q", attempt.RingingChan, "SIP/100-0001")
	}
}

func TestFeaturesCIgnoresLinesWithoutPickup(t *testing.T) {
	store := callgraph.NewStore()
	line := []byte("features.c: Executing something else entirely")
	pos := modulePos(line, "features.c:") + 1

	FeaturesC(store, 1, line, pos, "when", nil)

	if len(store.PickupChans) != 0 {
		t.Errorf("PickupChans = %v, want empty for a line without a pickup event", store.PickupChans)
	}
}

func TestFeaturesCIgnoresPickupWithoutAttemptBy(t *testing.T) {
	store := callgraph.NewStore()
	line := []byte("features.c: Executing pickup SIP/100-0001 triggered with no attribution")
	pos := modulePos(line, "features.c:") + 1

	FeaturesC(store, 1, line, pos, "when", nil)

	if len(store.PickupChans) != 0 {
		t.Errorf("PickupChans = %v, want empty when the line never names an attempting channel", store.PickupChans)
	}
}
