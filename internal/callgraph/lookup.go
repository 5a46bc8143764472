package callgraph

import (
	"bytes"
	"sort"
	"strconv"
)

// NewSip allocates a SipMessage and registers it in sip message order,
// the order FindOKSipFrom and traversal line-number scans rely on.
func (s *Store) NewSip(lineNo int, direction string, peerAddr []byte, isNat bool, when string, acall *AstCall, introLine []byte) *SipMessage {
	sip := NewSipMessage(lineNo, direction, peerAddr, isNat, when, acall, introLine)
	s.SipMessages = append(s.SipMessages, sip)
	return sip
}

// FinishSip finalizes a just-assembled message: registers it against its
// call-id and dialog, resolves sender/recipient, links any pending intro
// line to the now-known call-id, and indexes it by from/to phone for
// PhoneSipMap-based search.
func (s *Store) FinishSip(sip *SipMessage) {
	if sip.CallID != "" {
		s.CallSipMap[sip.CallID] = append(s.CallSipMap[sip.CallID], sip)
		dialog, ok := s.Dialogs[sip.CallID]
		if !ok {
			dialog = NewSipDialog(sip.CallID, sip)
			s.Dialogs[sip.CallID] = dialog
		}
		sip.Dialog = dialog
		sip.FinalizeSip()
		dialog.AddSip(sip)
		if sip.IntroLine != nil {
			// We didn't know the call-id yet when the intro line was seen.
			s.LinkCall(sip.LineNo-1, sip.IntroLine, sip.CallID, sip.ACall)
		}
		if timeout, ok := s.CallTimeouts[sip.CallID]; ok {
			dialog.Timeout = &timeout
		}
	}
	if sip.ACall != nil {
		sip.ACall.SipSet[sip] = struct{}{}
	}
	if len(sip.FromName) > 0 {
		s.PhoneSipMap[string(sip.FromName)] = append(s.PhoneSipMap[string(sip.FromName)], sip)
	}
	if len(sip.FromNum) > 0 {
		s.PhoneSipMap[string(sip.FromNum)] = append(s.PhoneSipMap[string(sip.FromNum)], sip)
	}
	if len(sip.ToName) > 0 {
		s.PhoneSipMap[string(sip.ToName)] = append(s.PhoneSipMap[string(sip.ToName)], sip)
	}
	if len(sip.ToNum) > 0 {
		s.PhoneSipMap[string(sip.ToNum)] = append(s.PhoneSipMap[string(sip.ToNum)], sip)
	}
}

// FindOKSipFrom implements the pickup-bridging heuristic: since Asterisk
// gives no hard link between a pickup attempt and the SIP dialog it
// ultimately bridges, this scans sip messages backward from the end,
// stopping once it passes start_line_no, looking for a 200 OK whose
// From matches fromNum between the pickup and answer lines. It returns
// nil if no such message exists — a pickup with no matching 200 OK in
// the window is simply left unlinked to any SIP message; the caller
// still records the pickup event itself via Dial/Queue.Pickup.
func (s *Store) FindOKSipFrom(fromNum []byte, startLineNo, endLineNo int) *SipMessage {
	for i := len(s.SipMessages) - 1; i >= 0; i-- {
		sip := s.SipMessages[i]
		if sip.LineNo < startLineNo {
			return nil
		}
		if sip.LineNo > endLineNo {
			continue
		}
		if bytes.Equal(sip.FromNum, fromNum) && string(sip.Status) == "200 OK" {
			return sip
		}
	}
	return nil
}

// FindSipByRef looks up a message by its Ref() string ("call-id/line").
func (s *Store) FindSipByRef(ref string) *SipMessage {
	idx := bytes.LastIndexByte([]byte(ref), '/')
	if idx < 0 {
		return nil
	}
	callID, lineNoTxt := ref[:idx], ref[idx+1:]
	for _, sip := range s.CallSipMap[callID] {
		if strconv.Itoa(sip.LineNo+1) == lineNoTxt {
			return sip
		}
	}
	return nil
}

// Search implements the plain-text query used by the external viewer:
// exact channel name, exact call-id, and substring-matched phone numbers.
func (s *Store) Search(number, chanName, callID string) []string {
	var results []string
	if _, ok := s.Channels[chanName]; ok {
		results = append(results, chanName)
	}
	if sips, ok := s.CallSipMap[callID]; ok && len(sips) > 0 {
		results = append(results, callID)
	}
	var phones []string
	for _, phone := range s.PhoneSet() {
		if bytes.Contains([]byte(phone), []byte(number)) {
			phones = append(phones, phone)
		}
	}
	sort.Strings(phones)
	results = append(results, phones...)
	return results
}
