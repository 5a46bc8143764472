package subparsers

import (
	"testing"

	"github.com/mbonnet/astgraph/internal/callgraph"
)

func newDialAcall(store *callgraph.Store) (*callgraph.AstCall, *callgraph.Channel) {
	acall := store.LinkACall("C-00001", 1, []byte("line"), "when")
	channel := store.LinkChannel("SIP/tk-0015b", 1, []byte("line"), "when", acall)
	dial := channel.StartDial(1, "when", "100", []byte("SIP/441"))
	acall.CurrentDial = dial
	return acall, channel
}

func TestAppDialCRinging(t *testing.T) {
	store := callgraph.NewStore()
	acall, _ := newDialAcall(store)
	line := []byte(`app_dial.c: -- SIP/441-0015bc3d is ringing`)
	pos := modulePos(line, "app_dial.c:") + 1

	AppDialC(store, 2, line, pos, "when", acall)

	if string(acall.CurrentDial.Status()) != "RINGING" {
		t.Errorf("Status() = %q, want RINGING", acall.CurrentDial.Status())
	}
}

func TestAppDialCNobodyPickedUpClearsCurrentDial(t *testing.T) {
	store := callgraph.NewStore()
	acall, _ := newDialAcall(store)
	line := []byte(`app_dial.c: -- Nobody picked up in 20000 ms`)
	pos := modulePos(line, "app_dial.c:") + 1

	AppDialC(store, 3, line, pos, "when", acall)

	if acall.CurrentDial != nil {
		t.Error("Nobody picked up should clear the AstCall's current dial")
	}
}

func TestAppDialCAnsweredUsesPickupBridge(t *testing.T) {
	store := callgraph.NewStore()
	acall, channel := newDialAcall(store)
	store.PickupChans["SIP/441-0015bc3d"] = callgraph.PickupAttempt{
		LineNo:      2,
		Line:        []byte("pickup line"),
		When:        "when",
		RingingChan: []byte("SIP/441-0015bc3d"),
	}

	// chan1 (after "answered") must equal the dial's owning channel name
	// for Answered to take effect; ansByChan (before "answered") is the
	// channel the pickup mapping was keyed on.
	line := []byte(`app_dial.c: -- SIP/441-0015bc3d answered ` + channel.Name)
	pos := modulePos(line, "app_dial.c:") + 1

	AppDialC(store, 4, line, pos, "when", acall)

	if string(acall.CurrentDial.Status()) != "ANSWERED" {
		t.Errorf("Status() = %q, want ANSWERED (the pickup's PICKUP status must be overridden)", acall.CurrentDial.Status())
	}
	if len(acall.CurrentDial.Log()) != 2 {
		t.Fatalf("Log() has %d entries, want 2 (pickup + answered)", len(acall.CurrentDial.Log()))
	}
}
