package subparsers

import "github.com/mbonnet/astgraph/internal/callgraph"

// currentDial returns acall's active Dial, or nil if there is no active
// AstCall at all (mirroring Python's "acall and acall.current_dial").
func currentDial(acall *callgraph.AstCall) *callgraph.Dial {
	if acall == nil {
		return nil
	}
	return acall.CurrentDial
}

// currentQueue is the Queue analogue of currentDial.
func currentQueue(acall *callgraph.AstCall) *callgraph.Queue {
	if acall == nil {
		return nil
	}
	return acall.CurrentQueue
}

// sliceRange returns line[a:b], clamped to line's bounds so a malformed
// or truncated line never panics a sub-parser — it just yields a shorter
// (possibly empty) slice, which downstream code treats as "not found".
func sliceRange(line []byte, a, b int) []byte {
	if a < 0 {
		a = 0
	}
	if a > len(line) {
		a = len(line)
	}
	if b > len(line) {
		b = len(line)
	}
	if b < a {
		b = a
	}
	return line[a:b]
}

func sliceFrom(line []byte, a int) []byte {
	return sliceRange(line, a, len(line))
}
