package subparsers

import (
	"bytes"

	"github.com/mbonnet/astgraph/internal/callgraph"
	"github.com/mbonnet/astgraph/internal/logtext"
)

// AppDialC handles app_dial.c: lines — the Dial() app's per-device
// progress events (called/ringing/busy/progress/pickup/answered/no
// answer/everyone busy) for whichever Dial is currently active on the
// owning AstCall.
func AppDialC(store *callgraph.Store, lineNo int, line []byte, pos int, when string, acall *callgraph.AstCall) {
	dial := currentDial(acall)
	if dial == nil {
		return
	}

	if idx := bytes.Index(line[pos:], []byte("-- Called")); idx >= 0 {
		idx += pos
		device := sliceFrom(line, idx+10)
		dial.Called(lineNo, when, device)
		return
	}

	if bytes.HasSuffix(line, []byte("is ringing")) {
		chanName, _, ok := logtext.Delimited(line, []byte("-- "), []byte(" "), pos)
		if ok {
			dial.Ringing(lineNo, when, chanName)
		}
		return
	}

	if bytes.HasSuffix(line, []byte("is busy")) {
		chanName, _, ok := logtext.Delimited(line, []byte("-- "), []byte(" "), pos)
		if ok {
			dial.Busy(lineNo, when, chanName)
		}
		return
	}

	if idx := bytes.Index(line[pos:], []byte("is making progress passing it to")); idx >= 0 {
		chan2, _, ok := logtext.Delimited(line, []byte("-- "), []byte(" "), pos)
		if !ok {
			return
		}
		if toIdx := bytes.Index(line, []byte("it to ")); toIdx >= 0 {
			chan1 := sliceFrom(line, toIdx+6)
			dial.Progress(lineNo, when, chan1, chan2)
		}
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
			dial.Pickup(pickup.LineNo, pickup.When, pickup.RingingChan, ansByChan)
			dial.Channel.Lines = append(dial.Channel.Lines, callgraph.LineRef{LineNo: pickup.LineNo, Line: pickup.Line})
			phone := logtext.ChannelPhone(ansByChan)
			if sip := store.FindOKSipFrom(phone, pickup.LineNo, lineNo); sip != nil {
				dial.Channel.SipSet[sip] = struct{}{}
			}
		}
		dial.Answered(lineNo, when, chan1, ansByChan)
		return
	}

	if idx := bytes.Index(line[pos:], []byte("-- Nobody picked up")); idx >= 0 {
		dial.NobodyPickedUp(lineNo, when)
		acall.CurrentDial = nil
		return
	}

	if idx := bytes.Index(line[pos:], []byte("== Everyone is busy")); idx >= 0 {
		dial.Finish()
		return
	}
}
