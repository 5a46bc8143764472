// Package sipmsg assembles the header and body lines that follow a SIP
// intro banner ("<--- SIP read from ..." / "<--- Transmitting ...") into
// a callgraph.SipMessage, one line at a time as the driver feeds them in.
package sipmsg

import (
	"bytes"

	"github.com/mbonnet/astgraph/internal/callgraph"
)

// state is the assembler's position within one message: collecting
// headers, the blank line that ends them, collecting body lines, or the
// blank line that can end the body (but may also just be a blank line
// embedded in a multi-part body, hence state 3 below).
type state int

const (
	stateHeader state = iota
	statePreBody
	stateBody
	statePostBodyBlank
)

// Assembler holds the in-flight message and its current state.
type Assembler struct {
	msg   *callgraph.SipMessage
	where state
}

// New starts assembling msg from the HEADER state.
func New(msg *callgraph.SipMessage) *Assembler {
	return &Assembler{msg: msg, where: stateHeader}
}

// Message returns the message under assembly.
func (a *Assembler) Message() *callgraph.SipMessage { return a.msg }

// AddLine feeds one more line into the assembler. It returns false once
// the message is complete (the caller must finalize and release the
// assembler) — including when line itself turns out to belong to the
// next message's intro banner, in which case that line is NOT
// reprocessed: the assembler simply ends and the line is dropped, the
// same way the reference implementation's load loop does (a `continue`
// immediately after finishing the in-flight message, not a fallthrough
// into banner detection).
func (a *Assembler) AddLine(line []byte) bool {
	if bytes.HasPrefix(line, []byte("<--")) || bytes.HasPrefix(line, []byte("---")) {
		return false
	}

	switch a.where {
	case stateHeader:
		if len(line) > 0 {
			addHeader(a.msg, line)
			return true
		}
		a.where = statePreBody
		return true

	case statePreBody:
		if len(line) > 0 {
			a.msg.Body = append(a.msg.Body, line)
			a.where = stateBody
			return true
		}
		// A blank line immediately after the header-ending blank line
		// ends the message with an empty body. (The reference
		// implementation ends the message here rather than tolerating a
		// second blank line, which is the behavior we follow.)
		return false

	case stateBody:
		if len(line) > 0 {
			a.msg.Body = append(a.msg.Body, line)
		} else {
			a.where = statePostBodyBlank
		}
		return true

	default: // statePostBodyBlank
		if len(line) > 0 {
			a.msg.Body = append(a.msg.Body, nil, line)
			a.where = stateBody
			return true
		}
		return false
	}
}
