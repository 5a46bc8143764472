// Package callgraph holds the entity types the engine reconstructs from a
// log: AstCall threads, channels, dial/queue applications, SIP messages
// and dialogs, and the Store arena that owns them all.
//
// Entities reference each other cyclically (a SipMessage points at its
// SipDialog, which holds a slice of SipMessage; a Channel holds AstCalls
// and vice versa), so Store is the single owner: every cross-reference is
// a pointer into maps or sets the Store maintains, never a reference the
// garbage collector would need to break a cycle over — Go's GC handles
// cycles fine, but centralizing ownership here keeps lookups
// (by phone, by channel name, by call-id) in one place.
package callgraph

// Store is the arena holding every entity parsed from one log (and its
// optional CDR enrichment), plus the lookup indexes the traversal and
// search layers query.
type Store struct {
	TotalLines int

	ACalls map[string]*AstCall
	// CallLines holds raw verbose lines that mention a call-id by string
	// (chan_sip.c teardown/timeout events and SIP intro lines), keyed by
	// call-id, whether or not a SipDialog exists for it yet.
	CallLines map[string][]LineRef

	SipMessages []*SipMessage

	// CallTimeouts records a retransmission timeout seen for a call-id,
	// applied to the SipDialog once finalized.
	CallTimeouts map[string]LineRef

	Dialogs  map[string]*SipDialog
	Channels map[string]*Channel

	// PickupChans maps the channel that performed a feature-code pickup
	// to the pickup attempt event, keyed by the channel answering.
	PickupChans map[string]PickupAttempt

	Queues map[string][]*Queue

	// Links
	CallACallMap    map[string]map[*AstCall]struct{}
	CallSipMap      map[string][]*SipMessage
	PhoneSipMap     map[string][]*SipMessage
	PhoneChannelMap map[string]map[*Channel]struct{}
}

// LineRef is a raw log line retained for display, paired with its 0-based
// line number.
type LineRef struct {
	LineNo int
	Line   []byte
}

// PickupAttempt records a feature-code pickup in progress: channel is the
// channel performing the pickup (the one that will answer), of a call
// ringing on ringingChan.
type PickupAttempt struct {
	LineNo      int
	Line        []byte
	When        string
	RingingChan []byte
}

// NewStore allocates an empty arena ready to receive entities from a
// single parse pass.
func NewStore() *Store {
	return &Store{
		ACalls:          make(map[string]*AstCall),
		CallLines:       make(map[string][]LineRef),
		CallTimeouts:    make(map[string]LineRef),
		Dialogs:         make(map[string]*SipDialog),
		Channels:        make(map[string]*Channel),
		PickupChans:     make(map[string]PickupAttempt),
		Queues:          make(map[string][]*Queue),
		CallACallMap:    make(map[string]map[*AstCall]struct{}),
		CallSipMap:      make(map[string][]*SipMessage),
		PhoneSipMap:     make(map[string][]*SipMessage),
		PhoneChannelMap: make(map[string]map[*Channel]struct{}),
	}
}

// LinkACall finds or creates the AstCall for acallID, recording this line
// against it.
func (s *Store) LinkACall(acallID string, lineNo int, line []byte, when string) *AstCall {
	acall, ok := s.ACalls[acallID]
	if !ok {
		acall = newAstCall(acallID, lineNo, when)
		s.ACalls[acallID] = acall
	}
	acall.Lines = append(acall.Lines, LineRef{lineNo, line})
	return acall
}

// LinkChannel finds or creates the Channel named chan, recording this
// line and (if acall is non-nil) cross-linking the two entities.
func (s *Store) LinkChannel(chanName string, lineNo int, line []byte, when string, acall *AstCall) *Channel {
	if chanName == "" {
		return nil
	}
	channel, ok := s.Channels[chanName]
	if !ok {
		channel = newChannel(chanName, lineNo, when)
		s.Channels[chanName] = channel
	}
	channel.Lines = append(channel.Lines, LineRef{lineNo, line})
	if acall != nil {
		acall.ChannelSet[channel] = struct{}{}
		channel.ACallSet[acall] = struct{}{}
	}
	return channel
}

// LinkCall records a raw line against a call-id, and cross-links the
// call-id to the current AstCall if one is active.
func (s *Store) LinkCall(lineNo int, line []byte, callID string, acall *AstCall) {
	if callID == "" {
		return
	}
	s.CallLines[callID] = append(s.CallLines[callID], LineRef{lineNo, line})
	if acall != nil {
		acall.CallIDSet[callID] = struct{}{}
		set, ok := s.CallACallMap[callID]
		if !ok {
			set = make(map[*AstCall]struct{})
			s.CallACallMap[callID] = set
		}
		set[acall] = struct{}{}
	}
}

// RetransmissionTimeout records a retransmission timeout event for a
// call-id, applied to the dialog once it exists.
func (s *Store) RetransmissionTimeout(callID string, lineNo int, when string) {
	if callID == "" {
		return
	}
	s.CallTimeouts[callID] = LineRef{LineNo: lineNo, Line: []byte(when)}
}

// AddPhoneChannel records that phone is reachable through channel,
// building the index the traversal seed step and CDR enrichment both
// populate.
func (s *Store) AddPhoneChannel(phone string, channel *Channel) {
	if channel == nil || phone == "" {
		return
	}
	set, ok := s.PhoneChannelMap[phone]
	if !ok {
		set = make(map[*Channel]struct{})
		s.PhoneChannelMap[phone] = set
	}
	set[channel] = struct{}{}
}

// AddQueue registers queue under its name for lookup by queue name.
func (s *Store) AddQueue(queue *Queue) {
	s.Queues[queue.Name] = append(s.Queues[queue.Name], queue)
}

// PhoneSet is the union of every phone/extension/queue-name known to the
// store via SIP headers, CDR enrichment, or queue membership.
func (s *Store) PhoneSet() []string {
	seen := make(map[string]struct{})
	for k := range s.PhoneChannelMap {
		seen[k] = struct{}{}
	}
	for k := range s.PhoneSipMap {
		seen[k] = struct{}{}
	}
	for k := range s.Queues {
		seen[k] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	return out
}
