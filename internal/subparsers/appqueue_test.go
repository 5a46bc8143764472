package subparsers

import (
	"testing"

	"github.com/mbonnet/astgraph/internal/callgraph"
)

func newQueuedChannel(store *callgraph.Store) (*callgraph.AstCall, *callgraph.Channel) {
	acall := store.LinkACall("C-1", 0, []byte("line"), "when")
	channel := store.LinkChannel("SIP/441-0015bc3d", 1, []byte("line1"), "when", acall)
	queue := channel.StartQueue(1, "when", "600", []byte("support"))
	acall.CurrentQueue = queue
	store.AddQueue(queue)
	return acall, channel
}

func TestAppQueueCRinging(t *testing.T) {
	store := callgraph.NewStore()
	acall, channel := newQueuedChannel(store)

	line := []byte("app_queue.c: -- SIP/441-0015bc3d is ringing")
	pos := modulePos(line, "app_queue.c:") + 1

	AppQueueC(store, 2, line, pos, "when", acall)

	if string(acall.CurrentQueue.Status()) != "RINGING" {
		t.Errorf("Status() = %q, want RINGING", acall.CurrentQueue.Status())
	}
	_ = channel
}

func TestAppQueueCToldPosition(t *testing.T) {
	store := callgraph.NewStore()
	acall, _ := newQueuedChannel(store)

	line := []byte("app_queue.c: -- Told SIP/441-0015bc3d (which was 3) to wait")
	pos := modulePos(line, "app_queue.c:") + 1

	AppQueueC(store, 2, line, pos, "when", acall)

	log := acall.CurrentQueue.Log()
	if len(log) != 1 {
		t.Fatalf("Log() = %d entries, want 1", len(log))
	}
	if string(log[0].Detail) != "3" {
		t.Errorf("Detail = %q, want %q", log[0].Detail, "3")
	}
}

func TestAppQueueCAnsweredUsesPickupBridge(t *testing.T) {
	store := callgraph.NewStore()
	acall, channel := newQueuedChannel(store)

	store.PickupChans["SIP/441-0015bc3d"] = callgraph.PickupAttempt{
		LineNo:      2,
		Line:        []byte("pickup line"),
		When:        "when",
		RingingChan: []byte("SIP/other-0001"),
	}

	line := []byte("app_queue.c: -- SIP/441-0015bc3d answered SIP/441-0015bc3d")
	pos := modulePos(line, "app_queue.c:") + 1

	AppQueueC(store, 3, line, pos, "when", acall)

	if string(acall.CurrentQueue.Status()) != "ANSWERED" {
		t.Errorf("Status() = %q, want ANSWERED", acall.CurrentQueue.Status())
	}
	if len(channel.Lines) != 2 {
		t.Errorf("Channel.Lines = %d, want the pickup line appended alongside the linking line", len(channel.Lines))
	}
}

func TestAppQueueCNilQueueIsNoop(t *testing.T) {
	store := callgraph.NewStore()
	acall := store.LinkACall("C-1", 0, []byte("line"), "when")

	line := []byte("app_queue.c: -- SIP/441-0015bc3d is ringing")
	pos := modulePos(line, "app_queue.c:") + 1

	AppQueueC(store, 2, line, pos, "when", acall)
}
