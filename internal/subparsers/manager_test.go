package subparsers

import (
	"testing"

	"github.com/mbonnet/astgraph/internal/callgraph"
)

func TestManagerCFinishesActiveDial(t *testing.T) {
	store := callgraph.NewStore()
	acall := store.LinkACall("C-1", 0, []byte("line"), "when")
	channel := store.LinkChannel("SIP/441-0015bc3d", 1, []byte("line1"), "when", acall)
	dial := channel.StartDial(1, "when", "441", []byte("SIP/441-0015bc3d"))
	channel.CurrentDial = dial

	line := []byte("manager.c: Manager 'admin' hanging up channel: SIP/441-0015bc3d")
	pos := modulePos(line, "manager.c:") + 1

	ManagerC(store, 5, line, pos, "when", acall)

	if string(dial.Status()) != "EXIT" {
		t.Errorf("Status() = %q, want EXIT after a manager hangup finishes the dial", dial.Status())
	}
	if len(channel.Lines) != 2 {
		t.Errorf("Channel.Lines = %d, want the hangup line appended", len(channel.Lines))
	}
}

func TestManagerCUnknownChannelIsNoop(t *testing.T) {
	store := callgraph.NewStore()
	line := []byte("manager.c: Manager 'admin' hanging up channel: SIP/ghost-0001")
	pos := modulePos(line, "manager.c:") + 1

	ManagerC(store, 1, line, pos, "when", nil)
}

func TestManagerCIgnoresLinesWithoutHangup(t *testing.T) {
	store := callgraph.NewStore()
	channel := store.LinkChannel("SIP/441-0015bc3d", 1, []byte("line1"), "when", nil)

	line := []byte("manager.c: Manager 'admin' logged in")
	pos := modulePos(line, "manager.c:") + 1

	ManagerC(store, 1, line, pos, "when", nil)

	if len(channel.Lines) != 1 {
		t.Errorf("Channel.Lines = %d, want unchanged for a non-hangup line", len(channel.Lines))
	}
}
