package subparsers

import (
	"bytes"

	"github.com/mbonnet/astgraph/internal/callgraph"
	"github.com/mbonnet/astgraph/internal/logtext"
)

// PbxC handles pbx.c: lines — channel/extension bookkeeping and the
// Dial()/Queue() app invocations that start a call's signaling apps.
func PbxC(store *callgraph.Store, lineNo int, line []byte, pos int, when string, acall *callgraph.AstCall) {
	// -- Auto fallthrough, chan 'SIP/322-0015bc14'
	if idx := bytes.Index(line[pos:], []byte("-- Auto fallthrough, chan")); idx >= 0 {
		idx += pos
		chanName, _, ok := logtext.Delimited(line, []byte("'"), []byte("'"), idx+25)
		if ok && len(chanName) > 0 {
			store.LinkChannel(string(chanName), lineNo, line, when, acall)
		}
		return
	}

	// -- Executing [016445520@ctx1:2] Dial("SIP/tk-0015b", "SIP/441&SIP/tk/123,14")
	if idx := bytes.Index(line[pos:], []byte("-- Executing")); idx >= 0 {
		idx += pos
		extension, p1, ok1 := logtext.Delimited(line, []byte("["), []byte("@"), idx+12)
		if !ok1 {
			return
		}
		app, p2, ok2 := logtext.Delimited(line, []byte("] "), []byte("("), p1)
		if !ok2 {
			return
		}
		chanName, p3, ok3 := logtext.Delimited(line, []byte("(\""), []byte("\""), p2)
		if !ok3 {
			return
		}
		channel := store.LinkChannel(string(chanName), lineNo, line, when, acall)
		if channel == nil {
			return
		}
		store.AddPhoneChannel(string(extension), channel)
		channel.AddExtension(string(extension), lineNo, when)

		switch string(app) {
		case "Dial":
			appData, _, ok := logtext.Delimited(line, []byte("\""), []byte("\""), p3+2)
			if !ok {
				return
			}
			dial := channel.StartDial(lineNo, when, string(extension), appData)
			for _, phone := range dial.Phones {
				store.AddPhoneChannel(string(phone), channel)
			}
			if acall != nil {
				acall.CurrentDial = dial
			}
		case "Queue":
			appData, _, ok := logtext.Delimited(line, []byte("\""), []byte("\""), p3+2)
			if !ok {
				return
			}
			queue := channel.StartQueue(lineNo, when, string(extension), appData)
			if acall != nil {
				acall.CurrentQueue = queue
			}
			store.AddQueue(queue)
		}
		return
	}

	// == Spawn extension (sub-gsm, tk1, 7) exited non-zero on 'SIP/208-0015bcb7'
	if idx := bytes.Index(line[pos:], []byte("== Spawn extension")); idx >= 0 {
		idx += pos
		dial := currentDial(acall)
		if dial == nil {
			return
		}
		if exIdx := bytes.Index(line[idx:], []byte("exited")); exIdx >= 0 {
			exIdx += idx
			chanName, _, ok := logtext.Delimited(line, []byte("'"), []byte("'"), exIdx)
			if ok && len(chanName) > 0 {
				dial.ExtensionExited(lineNo, when)
			}
			acall.CurrentDial = nil
		}
		return
	}
}
