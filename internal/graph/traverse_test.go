package graph

import (
	"testing"

	"github.com/mbonnet/astgraph/internal/callgraph"
)

func buildTwoChannelStore() (*callgraph.Store, *callgraph.Channel, *callgraph.Channel) {
	store := callgraph.NewStore()
	acall := store.LinkACall("C-1", 0, []byte("line"), "when")
	chanA := store.LinkChannel("SIP/441-0001", 1, []byte("lineA"), "when", acall)
	chanB := store.LinkChannel("SIP/442-0002", 2, []byte("lineB"), "when", acall)
	store.AddPhoneChannel("441", chanA)
	store.AddPhoneChannel("442", chanB)
	return store, chanA, chanB
}

func TestTraverseSeedsFromPhoneChannelMap(t *testing.T) {
	store, chanA, _ := buildTwoChannelStore()

	groups, lines := Traverse(store, "441", Isolation{}, 10)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if len(lines) == 0 {
		t.Error("flattened lines should be populated from the channel and its linked AstCall")
	}

	var found bool
	for _, entry := range groups[0].Overview {
		if entry.Obj == chanA {
			found = true
		}
	}
	if !found {
		t.Error("group overview should include the seed channel")
	}
}

func TestTraverseExpandsSharedAstCallToOtherChannel(t *testing.T) {
	store, _, chanB := buildTwoChannelStore()

	groups, _ := Traverse(store, "441", Isolation{}, 10)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}

	var foundB bool
	for _, entry := range groups[0].Overview {
		if entry.Obj == chanB {
			foundB = true
		}
	}
	if !foundB {
		t.Error("traversal should pull in the other channel sharing the same AstCall")
	}
}

func TestTraverseRespectsMaxDepth(t *testing.T) {
	store, _, chanB := buildTwoChannelStore()

	// depth 0 only visits the seed channel itself; expanding to the AstCall
	// happens at level+1, which already exceeds a maxDepth of 0.
	groups, _ := Traverse(store, "441", Isolation{}, 0)
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	for _, entry := range groups[0].Overview {
		if entry.Obj == chanB {
			t.Error("a maxDepth of 0 should not reach the second channel via the shared AstCall")
		}
	}
}

func TestIsolateGroupsReturnsFirstMatchOnly(t *testing.T) {
	store := callgraph.NewStore()
	acall1 := store.LinkACall("C-1", 0, []byte("line"), "when")
	chan1 := store.LinkChannel("queue-chan-1", 1, []byte("line1"), "when", acall1)
	store.AddQueue(chan1.StartQueue(1, "when", "600", []byte("support")))

	acall2 := store.LinkACall("C-2", 5, []byte("line"), "when")
	chan2 := store.LinkChannel("queue-chan-2", 6, []byte("line2"), "when", acall2)
	store.AddQueue(chan2.StartQueue(6, "when", "600", []byte("support")))

	groups, _ := Traverse(store, "support", Isolation{Kind: IsolateChannel, Ref: "queue-chan-1"}, 10)
	if len(groups) != 1 {
		t.Fatalf("isolating by channel should return exactly one group, got %d", len(groups))
	}

	var found bool
	for _, entry := range groups[0].Overview {
		if entry.Obj == chan1 {
			found = true
		}
	}
	if !found {
		t.Error("the isolated group should be the one containing the matched channel")
	}
}

func TestIsolateGroupsUnresolvedRefReturnsAllGroups(t *testing.T) {
	store, _, _ := buildTwoChannelStore()
	all, _ := Traverse(store, "441", Isolation{}, 10)
	groups, _ := Traverse(store, "441", Isolation{Kind: IsolateChannel, Ref: "does-not-exist"}, 10)
	if len(groups) != len(all) {
		t.Errorf("an unresolved isolation ref should fall through to all groups, got %d, want %d", len(groups), len(all))
	}
}
