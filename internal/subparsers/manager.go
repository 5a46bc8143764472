package subparsers

import (
	"bytes"

	"github.com/mbonnet/astgraph/internal/callgraph"
)

// ManagerC handles manager.c: lines — an AMI client hanging up a channel,
// which finishes that channel's active Dial if it has one.
func ManagerC(store *callgraph.Store, lineNo int, line []byte, pos int, when string, acall *callgraph.AstCall) {
	idx := bytes.Index(line[pos:], []byte("hanging up channel: "))
	if idx < 0 {
		return
	}
	idx += pos

	chanName := string(sliceFrom(line, idx+20))
	channel, ok := store.Channels[chanName]
	if !ok {
		return
	}
	channel.Lines = append(channel.Lines, callgraph.LineRef{LineNo: lineNo, Line: line})
	if channel.CurrentDial != nil {
		channel.CurrentDial.ManagerHangup(lineNo, when, []byte(chanName))
	}
}
