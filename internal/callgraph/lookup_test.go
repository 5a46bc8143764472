package callgraph

import "testing"

func TestStoreFinishSipIndexesByCallIDAndPhone(t *testing.T) {
	store := NewStore()
	sip := store.NewSip(10, "IN", []byte("10.0.0.1:5060"), false, "2024-03-05 12:00:00", nil, nil)
	sip.CallID = "abc@10.0.0.1"
	sip.FromNum = []byte("441")
	sip.ToNum = []byte("442")

	store.FinishSip(sip)

	if len(store.CallSipMap["abc@10.0.0.1"]) != 1 {
		t.Fatalf("CallSipMap should index the message by call-id")
	}
	if _, ok := store.Dialogs["abc@10.0.0.1"]; !ok {
		t.Error("FinishSip should create a dialog for a new call-id")
	}
	if len(store.PhoneSipMap["441"]) != 1 || len(store.PhoneSipMap["442"]) != 1 {
		t.Error("FinishSip should index the message under both From and To numbers")
	}
}

func TestStoreFindOKSipFromStopsBeforeStartLine(t *testing.T) {
	store := NewStore()
	early := store.NewSip(1, "IN", nil, false, "when", nil, nil)
	early.FromNum = []byte("441")
	early.Status = []byte("200 OK")
	store.FinishSip(early)

	inWindow := store.NewSip(5, "IN", nil, false, "when", nil, nil)
	inWindow.FromNum = []byte("441")
	inWindow.Status = []byte("200 OK")
	store.FinishSip(inWindow)

	got := store.FindOKSipFrom([]byte("441"), 3, 10)
	if got != inWindow {
		t.Error("FindOKSipFrom should return the 200 OK inside [startLineNo, endLineNo] and ignore earlier ones")
	}

	if got := store.FindOKSipFrom([]byte("441"), 0, 10); got != inWindow {
		t.Error("FindOKSipFrom scans from the newest message backward and should still find the in-window one")
	}
}

func TestStoreFindOKSipFromNoMatch(t *testing.T) {
	store := NewStore()
	sip := store.NewSip(1, "IN", nil, false, "when", nil, nil)
	sip.FromNum = []byte("441")
	sip.Status = []byte("486 Busy")
	store.FinishSip(sip)

	if got := store.FindOKSipFrom([]byte("441"), 0, 10); got != nil {
		t.Error("FindOKSipFrom should return nil when no 200 OK matches")
	}
}

func TestStoreFindSipByRef(t *testing.T) {
	store := NewStore()
	sip := store.NewSip(9, "IN", nil, false, "when", nil, nil)
	sip.CallID = "abc@10.0.0.1"
	store.FinishSip(sip)

	got := store.FindSipByRef(sip.Ref())
	if got != sip {
		t.Errorf("FindSipByRef(%q) did not resolve back to the original message", sip.Ref())
	}

	if store.FindSipByRef("missing/1") != nil {
		t.Error("FindSipByRef should return nil for an unknown call-id")
	}
}

func TestStoreSearch(t *testing.T) {
	store := NewStore()
	channel := store.LinkChannel("SIP/441-0015bc3d", 0, []byte("line"), "when", nil)
	store.AddPhoneChannel("441", channel)

	sip := store.NewSip(1, "IN", nil, false, "when", nil, nil)
	sip.CallID = "abc@10.0.0.1"
	store.FinishSip(sip)

	results := store.Search("44", "SIP/441-0015bc3d", "abc@10.0.0.1")

	wantAll := map[string]bool{"SIP/441-0015bc3d": false, "abc@10.0.0.1": false, "441": false}
	for _, r := range results {
		if _, ok := wantAll[r]; ok {
			wantAll[r] = true
		}
	}
	for want, found := range wantAll {
		if !found {
			t.Errorf("Search results %v missing expected entry %q", results, want)
		}
	}
}
