package subparsers

import (
	"testing"

	"github.com/mbonnet/astgraph/internal/callgraph"
)

func modulePos(line []byte, tag string) int {
	for i := 0; i+len(tag) <= len(line); i++ {
		if string(line[i:i+len(tag)]) == tag {
			return i + len(tag)
		}
	}
	return -1
}

func TestChanSipCTransmittingCreatesOutgoingSip(t *testing.T) {
	store := callgraph.NewStore()
	line := []byte("chan_sip.c: <--- Transmitting (NAT) to 10.0.0.2:5060 --->")
	pos := modulePos(line, "chan_sip.c:") + 1

	sip := ChanSipC(store, 10, line, pos, "when", nil)
	if sip == nil {
		t.Fatal("ChanSipC should produce a SipMessage for a Transmitting line")
	}
	if sip.Direction != "OUT" {
		t.Errorf("Direction = %q, want OUT", sip.Direction)
	}
	if !sip.IsNat {
		t.Error("IsNat should be true when the line mentions (NAT)")
	}
	if string(sip.PeerAddr) != "10.0.0.2:5060 ---" {
		t.Errorf("PeerAddr = %q, want the address text with the line's final character dropped", sip.PeerAddr)
	}
}

func TestChanSipCReallyDestroyingLinksCallID(t *testing.T) {
	store := callgraph.NewStore()
	line := []byte("chan_sip.c: Really destroying SIP dialog 'abc123@10.0.0.1' Method: OPTIONS")
	pos := modulePos(line, "chan_sip.c:") + 1

	sip := ChanSipC(store, 5, line, pos, "when", nil)
	if sip != nil {
		t.Error("a destroy-dialog line should not produce a new SipMessage")
	}
	if len(store.CallLines["abc123@10.0.0.1"]) != 1 {
		t.Error("ChanSipC should link the call-id to the raw line")
	}
}

func TestChanSipCRetransmittingRecordsAttemptNumber(t *testing.T) {
	store := callgraph.NewStore()
	line := []byte("chan_sip.c: Retransmitting #2 (NAT) to 10.0.0.3:5060:")
	pos := modulePos(line, "chan_sip.c:") + 1

	sip := ChanSipC(store, 1, line, pos, "when", nil)
	if sip == nil {
		t.Fatal("ChanSipC should produce a SipMessage for a Retransmitting line")
	}
	if sip.AttemptNo != "2" {
		t.Errorf("AttemptNo = %q, want %q", sip.AttemptNo, "2")
	}
}

func TestChanSipCRetransmissionTimeoutRecordsTimeout(t *testing.T) {
	store := callgraph.NewStore()
	line := []byte("chan_sip.c: Retransmission timeout reached on transmission abc123@10.0.0.1 for seqno 1")
	pos := modulePos(line, "chan_sip.c:") + 1

	ChanSipC(store, 7, line, pos, "2024-03-05 12:00:00", nil)
	if _, ok := store.CallTimeouts["abc123@10.0.0.1"]; !ok {
		t.Error("ChanSipC should record a retransmission timeout for the call-id")
	}
}
