package callgraph

import (
	"strconv"
	"time"

	"github.com/mbonnet/astgraph/internal/logtime"
)

// SipMessage is one SIP request or response captured from a
// "<--- SIP read from" / "<--- Transmitting" banner and the header/body
// lines that follow it. Header parsing is performed by the sipmsg
// assembler; this type is the parsed result it fills in.
type SipMessage struct {
	LineNo     int
	Direction  string // "IN" or "OUT"
	PeerAddr   []byte
	IsNat      bool
	When       string
	ACall      *AstCall
	IntroLine  []byte // the chan_sip.c line this message was detected from, if any
	AttemptNo  string

	Header [][]byte
	Body   [][]byte

	Request     []byte
	RequestAddr []byte
	Status      []byte

	FromName, FromNum, FromAddr []byte
	ToName, ToNum, ToAddr       []byte
	ViaAddr                     []byte
	CallID                      string
	CSeq                        []byte

	Dialog     *SipDialog
	RequestSip *SipMessage

	SenderAddr    []byte
	RecipientAddr []byte

	timestamp    time.Time
	timestampSet bool
}

// NewSipMessage constructs a message in the INTRO state, ready for the
// assembler to feed header/body lines into.
func NewSipMessage(lineNo int, direction string, peerAddr []byte, isNat bool, when string, acall *AstCall, introLine []byte) *SipMessage {
	return &SipMessage{
		LineNo:    lineNo,
		Direction: direction,
		PeerAddr:  peerAddr,
		IsNat:     isNat,
		When:      when,
		ACall:     acall,
		IntroLine: introLine,
	}
}

// Ref is the stable, human-meaningful reference to this message used by
// the search/find API: "<call-id>/<1-based-line-number>".
func (s *SipMessage) Ref() string {
	return s.CallID + "/" + strconv.Itoa(s.LineNo+1)
}

// Timestamp lazily parses When, caching the result (including failures,
// so repeated calls don't re-parse).
func (s *SipMessage) Timestamp() (time.Time, bool) {
	if !s.timestampSet {
		s.timestamp, _ = logtime.Parse(s.When)
		s.timestampSet = true
	}
	return s.timestamp, !s.timestamp.IsZero()
}

// Elapsed is the duration since the dialog's first message, or false if
// either timestamp is unknown.
func (s *SipMessage) Elapsed() (time.Duration, bool) {
	if s.Dialog == nil {
		return 0, false
	}
	start := s.Dialog.StartSip()
	if start == nil {
		return 0, false
	}
	st, ok := start.Timestamp()
	if !ok {
		return 0, false
	}
	t, ok := s.Timestamp()
	if !ok {
		return 0, false
	}
	return t.Sub(st), true
}

// FinalizeSip resolves RequestSip (for responses, by scanning the dialog
// backward for the request sharing this CSeq) and the sender/recipient
// address pair, per the fixed req/res x direction table:
//
//	req/res   dir  sender                  recipient
//	--------  ---  ----------------------  --------------
//	REQUEST   IN   via                     to, else req url
//	REQUEST   OUT  via                     req url
//	RESPONSE  IN   prev request recipient  via
//	RESPONSE  OUT  to                      via
func (s *SipMessage) FinalizeSip() {
	if len(s.Request) == 0 && s.Dialog != nil {
		for i := len(s.Dialog.SipList) - 1; i >= 0; i-- {
			cand := s.Dialog.SipList[i]
			if len(cand.Request) > 0 && string(cand.CSeq) == string(s.CSeq) {
				s.RequestSip = cand
				break
			}
		}
	}

	if len(s.Request) > 0 {
		s.SenderAddr = s.ViaAddr
		if s.Direction == "IN" {
			if len(s.ToAddr) > 0 {
				s.RecipientAddr = s.ToAddr
			} else {
				s.RecipientAddr = s.RequestAddr
			}
		} else {
			s.RecipientAddr = s.RequestAddr
		}
	} else {
		if s.Direction == "IN" {
			if s.RequestSip != nil {
				s.SenderAddr = s.RequestSip.RecipientAddr
			}
			s.RecipientAddr = s.ViaAddr
		} else {
			s.SenderAddr = s.ToAddr
			s.RecipientAddr = s.ViaAddr
		}
	}
}
