package callgraph

import (
	"bytes"

	"github.com/mbonnet/astgraph/internal/logtext"
)

// Channel is one Asterisk channel's lifetime: the apps it ran (Dial,
// Queue), the extensions it executed, and the AstCalls/SIP messages it
// was observed from.
type Channel struct {
	Name   string
	LineNo int
	When   string

	Apps       []App
	Extensions map[string]LineRef
	Lines      []LineRef

	ACallSet map[*AstCall]struct{}
	SipSet   map[*SipMessage]struct{}

	CurrentDial  *Dial
	CurrentQueue *Queue

	CLIDName string
	CLIDNum  string
}

func newChannel(name string, lineNo int, when string) *Channel {
	return &Channel{
		Name:       name,
		LineNo:     lineNo,
		When:       when,
		Extensions: make(map[string]LineRef),
		ACallSet:   make(map[*AstCall]struct{}),
		SipSet:     make(map[*SipMessage]struct{}),
	}
}

// AddExtension records the first line number/timestamp a channel is seen
// executing extension, ignoring later re-executions of the same extension.
func (c *Channel) AddExtension(extension string, lineNo int, when string) {
	if _, ok := c.Extensions[extension]; !ok {
		c.Extensions[extension] = LineRef{LineNo: lineNo, Line: []byte(when)}
	}
}

// StartDial begins a Dial app on this channel, parsing appData (the
// comma-then-options, ampersand-separated device list Asterisk logs for
// Dial(), e.g. "SIP/441&SIP/tk/123,14") into the set of phones dialed.
func (c *Channel) StartDial(lineNo int, when, extension string, appData []byte) *Dial {
	if idx := bytes.IndexByte(appData, ','); idx > 0 {
		appData = appData[:idx]
	}
	var phones [][]byte
	for _, device := range bytes.Split(appData, []byte("&")) {
		phones = append(phones, logtext.DevicePhone(device))
	}
	dial := newDial(c, lineNo, when, extension, phones)
	c.CurrentDial = dial
	c.Apps = append(c.Apps, dial)
	return dial
}

// StartQueue begins a Queue app on this channel.
func (c *Channel) StartQueue(lineNo int, when, extension string, queueName []byte) *Queue {
	queue := newQueue(c, lineNo, when, extension, string(queueName))
	c.CurrentQueue = queue
	c.Apps = append(c.Apps, queue)
	return queue
}

// Dials returns the Dial apps this channel ran, in execution order.
func (c *Channel) Dials() []*Dial {
	var out []*Dial
	for _, app := range c.Apps {
		if d, ok := app.(*Dial); ok {
			out = append(out, d)
		}
	}
	return out
}

// QueueApps returns the Queue apps this channel ran, in execution order.
func (c *Channel) QueueApps() []*Queue {
	var out []*Queue
	for _, app := range c.Apps {
		if q, ok := app.(*Queue); ok {
			out = append(out, q)
		}
	}
	return out
}

// DialedPhones is the union of phones dialed across every Dial this
// channel ran.
func (c *Channel) DialedPhones() map[string]struct{} {
	out := make(map[string]struct{})
	for _, d := range c.Dials() {
		for _, p := range d.Phones {
			out[string(p)] = struct{}{}
		}
	}
	return out
}

// Phones is the set of extensions this channel executed, plus every
// phone it dialed.
func (c *Channel) Phones() map[string]struct{} {
	out := c.DialedPhones()
	for ext := range c.Extensions {
		out[ext] = struct{}{}
	}
	return out
}
