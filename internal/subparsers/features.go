package subparsers

import (
	"bytes"

	"github.com/mbonnet/astgraph/internal/callgraph"
	"github.com/mbonnet/astgraph/internal/logtext"
)

// FeaturesC handles features.c: lines — feature-code pickups (*8-style
// call pickup), recorded so a later "answered" event on the picking-up
// channel can be recognized as a pickup rather than a normal answer.
func FeaturesC(store *callgraph.Store, lineNo int, line []byte, pos int, when string, acall *callgraph.AstCall) {
	idx := bytes.Index(line[pos:], []byte("pickup"))
	if idx < 0 {
		return
	}
	idx += pos

	targetChan, tpos, ok := logtext.Delimited(line, []byte(" "), []byte(" "), idx+6)
	if !ok || tpos <= 0 {
		return
	}

	attemptIdx := bytes.Index(line[tpos:], []byte("attempt by "))
	if attemptIdx < 0 {
		return
	}
	attemptIdx += tpos

	chanName := string(sliceFrom(line, attemptIdx+11))
	store.PickupChans[chanName] = callgraph.PickupAttempt{
		LineNo:      lineNo,
		Line:        line,
		When:        when,
		RingingChan: targetChan,
	}
}
