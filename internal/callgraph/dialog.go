package callgraph

// SipDialog tracks the lifecycle of all SIP messages sharing a Call-ID:
// whether the initial INVITE transaction is still establishing, whether
// it was ever established, and whether a BYE has torn it down.
type SipDialog struct {
	CallID  string
	SipList []*SipMessage

	Request        []byte
	DialogStatus   []byte
	DialogAck      []byte
	IsEstablishing bool

	// WasEstablished is set once an ACK completes an INVITE transaction
	// whose last response was 1xx or 2xx. Both provisional and final
	// success responses count: this mirrors the original parser's
	// literal behavior (it checks dialog_status.startswith('1') and
	// startswith('2') as two separate branches that both set the flag),
	// confirmed against the source rather than assumed from the spec
	// prose alone.
	WasEstablished bool

	HadBye  bool
	ByeAddr []byte

	// Timeout is set if a retransmission timeout was observed for this
	// call-id; filled in at finalize time from the store's CallTimeouts.
	Timeout *LineRef
}

// NewSipDialog creates a dialog seeded by its first SIP message.
func NewSipDialog(callID string, first *SipMessage) *SipDialog {
	return &SipDialog{
		CallID:         callID,
		Request:        first.Request,
		IsEstablishing: string(first.Request) == "INVITE",
	}
}

// AddSip advances the dialog's state machine with a newly finalized
// message and appends it to SipList.
func (d *SipDialog) AddSip(sip *SipMessage) {
	switch {
	case string(sip.Request) == "INVITE":
		// Multiple INVITEs (re-INVITE, retransmission) reset establishment.
		d.IsEstablishing = true
	case d.IsEstablishing:
		if len(sip.Status) > 0 {
			d.DialogStatus = sip.Status
		} else if string(sip.Request) == "ACK" {
			d.DialogAck = sip.Request
			d.IsEstablishing = false
			if len(d.DialogStatus) > 0 {
				if d.DialogStatus[0] == '1' || d.DialogStatus[0] == '2' {
					d.WasEstablished = true
				}
			}
		}
	case d.WasEstablished && !d.HadBye:
		if string(sip.Request) == "BYE" {
			d.ByeAddr = sip.SenderAddr
			d.HadBye = true
		}
	case string(d.Request) != "INVITE" && len(sip.Status) > 0:
		d.DialogStatus = sip.Status
	}

	d.SipList = append(d.SipList, sip)
}

// StartSip is the first message seen in this dialog, or nil.
func (d *SipDialog) StartSip() *SipMessage {
	if len(d.SipList) == 0 {
		return nil
	}
	return d.SipList[0]
}

// FinishSip is the last message seen, but only once the dialog has more
// than one message (a lone message has no separate "finish").
func (d *SipDialog) FinishSip() *SipMessage {
	if len(d.SipList) > 1 {
		return d.SipList[len(d.SipList)-1]
	}
	return nil
}
