package subparsers

import (
	"bytes"

	"github.com/mbonnet/astgraph/internal/callgraph"
	"github.com/mbonnet/astgraph/internal/logtext"
)

// AppQueueC handles app_queue.c: lines — ringing, queue-position
// announcements, and answers for whichever Queue is active on the owning
// AstCall. "Nobody picked up" is deliberately ignored here: Asterisk logs
// it once per ringing member, so treating it as an event would duplicate
// noise without adding information Dial's NobodyPickedUp already covers.
func AppQueueC(store *callgraph.Store, lineNo int, line []byte, pos int, when string, acall *callgraph.AstCall) {
	queue := currentQueue(acall)
	if queue == nil {
		return
	}

	if bytes.HasSuffix(line, []byte("is ringing")) {
		chanName, _, ok := logtext.Delimited(line, []byte("-- "), []byte(" "), pos)
		if ok {
			queue.Ringing(lineNo, when, chanName)
		}
		return
	}

	if idx := bytes.Index(line[pos:], []byte("Told")); idx >= 0 {
		idx += pos
		chanName, tpos, ok := logtext.Delimited(line, []byte(" "), []byte(" "), idx+4)
		if !ok {
			return
		}
		position, _, ok := logtext.Delimited(line, []byte("which was "), []byte(")"), tpos)
		if !ok {
			return
		}
		queue.Position(lineNo, when, chanName, position)
		return
	}

	if idx := bytes.Index(line[pos:], []byte("answered")); idx >= 0 {
		idx += pos
		chan1 := sliceFrom(line, idx+9)
		ansByChan, _, ok := logtext.Delimited(line, []byte("-- "), []byte(" "), pos)
		if !ok {
			return
		}
		if pickup, found := store.PickupChans[string(ansByChan)]; found {
			queue.Pickup(pickup.LineNo, pickup.When, pickup.RingingChan, ansByChan)
			queue.Channel.Lines = append(queue.Channel.Lines, callgraph.LineRef{LineNo: pickup.LineNo, Line: pickup.Line})
			phone := logtext.ChannelPhone(ansByChan)
			if sip := store.FindOKSipFrom(phone, pickup.LineNo, lineNo); sip != nil {
				queue.Channel.SipSet[sip] = struct{}{}
			}
		}
		queue.Answered(lineNo, when, chan1, ansByChan)
		return
	}
}
