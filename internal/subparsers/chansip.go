// Package subparsers implements one parser per Asterisk source-module tag
// (chan_sip.c, pbx.c, app_dial.c, features.c, app_queue.c, manager.c),
// each scanning the remainder of an already-timestamped verbose line for
// a handful of known message patterns and mutating the shared Store/
// AstCall/Channel state accordingly.
package subparsers

import (
	"bytes"

	"github.com/mbonnet/astgraph/internal/callgraph"
	"github.com/mbonnet/astgraph/internal/logtext"
)

// ChanSipC handles chan_sip.c: lines — SIP transport retries, retransmit
// attempts, and dialog teardown/timeout notices. It returns a new
// SipMessage for an outgoing (re)transmission, or nil for every other
// pattern (those just link a call-id to the current AstCall).
func ChanSipC(store *callgraph.Store, lineNo int, line []byte, pos int, when string, acall *callgraph.AstCall) *callgraph.SipMessage {
	if idx := bytes.Index(line[pos:], []byte("Reliably Transmitting")); idx >= 0 {
		idx += pos
		if toIdx := bytes.Index(sliceFrom(line, idx+21), []byte(" to ")); toIdx >= 0 {
			toIdx += idx + 21
			peerAddr := sliceRange(line, toIdx+4, len(line)-1)
			return store.NewSip(lineNo+1, "OUT", peerAddr, bytes.Contains(line, []byte("(NAT)")), when, acall, line)
		}
		return nil
	}

	if idx := bytes.Index(line[pos:], []byte("Transmitting")); idx >= 0 {
		idx += pos
		if toIdx := bytes.Index(sliceFrom(line, idx+12), []byte(" to ")); toIdx >= 0 {
			toIdx += idx + 12
			peerAddr := sliceRange(line, toIdx+4, len(line)-1)
			return store.NewSip(lineNo+1, "OUT", peerAddr, bytes.Contains(line, []byte("(NAT)")), when, acall, line)
		}
		return nil
	}

	if idx := bytes.Index(line[pos:], []byte("Retransmitting")); idx >= 0 {
		idx += pos
		attemptNum, apos, ok := logtext.Delimited(line, []byte("#"), []byte(" "), idx+14)
		if ok && len(attemptNum) > 0 {
			if toIdx := bytes.Index(sliceFrom(line, apos), []byte(" to ")); toIdx >= 0 {
				toIdx += apos
				peerAddr := sliceRange(line, toIdx+4, len(line)-1)
				sip := store.NewSip(lineNo+1, "OUT", peerAddr, bytes.Contains(line, []byte("(NAT)")), when, acall, line)
				sip.AttemptNo = string(attemptNum)
				return sip
			}
		}
		return nil
	}

	// Really destroying SIP dialog '<call-id>' Method: OPTIONS
	if idx := bytes.Index(line[pos:], []byte("Really destroying SIP dialog")); idx >= 0 {
		idx += pos
		callID, _, ok := logtext.Delimited(line, []byte("'"), []byte("'"), idx+28)
		if ok {
			store.LinkCall(lineNo, line, string(callID), acall)
		}
		return nil
	}

	// Scheduling destruction of SIP dialog '<call-id>' in 6400 ms (Method: BYE)
	if idx := bytes.Index(line[pos:], []byte("Scheduling destruction of SIP dialog")); idx >= 0 {
		idx += pos
		callID, _, ok := logtext.Delimited(line, []byte("'"), []byte("'"), idx+36)
		if ok {
			store.LinkCall(lineNo, line, string(callID), acall)
		}
		return nil
	}

	// Hanging up call <call-id> - no reply to our critical packet
	if idx := bytes.Index(line[pos:], []byte("Hanging up call")); idx >= 0 {
		idx += pos
		callID, _, ok := logtext.Delimited(line, []byte(" "), []byte(" "), idx+15)
		if ok {
			store.LinkCall(lineNo, line, string(callID), acall)
		}
		return nil
	}

	// Retransmission timeout reached on transmission <call-id> for seqno N
	if idx := bytes.Index(line[pos:], []byte("Retransmission timeout reached on transmission")); idx >= 0 {
		idx += pos
		callID, _, ok := logtext.Delimited(line, []byte(" "), []byte(" "), idx+46)
		if ok {
			store.LinkCall(lineNo, line, string(callID), acall)
			store.RetransmissionTimeout(string(callID), lineNo, when)
		}
		return nil
	}

	return nil
}
