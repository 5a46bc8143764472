package callgraph

import "github.com/mbonnet/astgraph/internal/logtext"

// App is the common interface Dial and Queue satisfy, so traversal and
// display code can treat either application generically.
type App interface {
	AppName() string
	Data() []byte
	Status() []byte
	Log() []AppEvent
}

// AppEvent is one entry in a Dial/Queue's event log: a ringing, busy,
// pickup, answer, or similar state transition observed on a channel.
type AppEvent struct {
	LineNo int
	When   string
	Kind   string
	Detail []byte // phone number, device name, or queue position text
	Chan   []byte
}

// Dial models one execution of the Dial() Asterisk application: the set
// of phones it rang and the status transitions observed for it.
type Dial struct {
	Channel   *Channel
	LineNo    int
	When      string
	Extension string
	Phones    [][]byte
	log       []AppEvent
	status    []byte
	wasBusy   bool
}

func newDial(channel *Channel, lineNo int, when, extension string, phones [][]byte) *Dial {
	return &Dial{
		Channel:   channel,
		LineNo:    lineNo,
		When:      when,
		Extension: extension,
		Phones:    phones,
		status:    []byte("ACTIVE"),
	}
}

func (d *Dial) AppName() string  { return "Dial" }
func (d *Dial) Status() []byte   { return d.status }
func (d *Dial) Log() []AppEvent  { return d.log }

// Data joins the dialed phones with ", ", matching the display the
// original viewer builds from LogDial.data.
func (d *Dial) Data() []byte {
	out := make([]byte, 0, 32)
	for i, p := range d.Phones {
		if i > 0 {
			out = append(out, ',', ' ')
		}
		out = append(out, p...)
	}
	return out
}

func (d *Dial) Called(lineNo int, when string, device []byte) {
	phone := logtext.DevicePhone(device)
	d.log = append(d.log, AppEvent{lineNo, when, "CALL", phone, device})
}

func (d *Dial) Ringing(lineNo int, when string, chanName []byte) {
	phone := logtext.ChannelPhone(chanName)
	d.log = append(d.log, AppEvent{lineNo, when, "RINGING", phone, chanName})
	if string(d.status) == "ACTIVE" {
		d.status = []byte("RINGING")
	}
}

func (d *Dial) Busy(lineNo int, when string, chanName []byte) {
	phone := logtext.ChannelPhone(chanName)
	d.log = append(d.log, AppEvent{lineNo, when, "BUSY", phone, chanName})
	d.wasBusy = true
}

// Progress records a "making progress" event, logged only when chan1 is
// this dial's own channel, matching the original's wrong-channel guard
// (and accompanying debug log, omitted here since it is never fatal).
func (d *Dial) Progress(lineNo int, when string, chan1, chan2 []byte) {
	if string(chan1) != d.Channel.Name {
		return
	}
	phone := logtext.ChannelPhone(chan2)
	d.log = append(d.log, AppEvent{lineNo, when, "PROGRESS", phone, chan2})
}

func (d *Dial) Pickup(lineNo int, when string, ringingChan, pickedByChan []byte) {
	phone := logtext.ChannelPhone(ringingChan)
	d.log = append(d.log, AppEvent{lineNo, when, "PICKUP", phone, ringingChan})
	d.status = []byte("PICKUP")
}

func (d *Dial) Answered(lineNo int, when string, chan1, chan2 []byte) {
	if string(chan1) != d.Channel.Name {
		return
	}
	phone := logtext.ChannelPhone(chan2)
	d.log = append(d.log, AppEvent{lineNo, when, "ANSWERED", phone, chan2})
	d.status = []byte("ANSWERED")
}

func (d *Dial) ManagerHangup(lineNo int, when string, chanName []byte) {
	if string(chanName) != d.Channel.Name {
		return
	}
	d.log = append(d.log, AppEvent{lineNo, when, "HANGUP", []byte("manager"), chanName})
	d.Finish()
}

func (d *Dial) ExtensionExited(lineNo int, when string) {
	d.log = append(d.log, AppEvent{LineNo: lineNo, When: when, Kind: "EXIT"})
	d.Finish()
}

// NobodyPickedUp sets status directly without the was_busy priority check
// Finish applies, since Asterisk only reaches this path once no channel
// answered at all.
func (d *Dial) NobodyPickedUp(lineNo int, when string) {
	d.log = append(d.log, AppEvent{LineNo: lineNo, When: when, Kind: "NO ANSWER"})
	d.Channel.CurrentDial = nil
	d.status = []byte("NO ANSWER")
}

// Finish resolves the final status once the Dial app exits: RINGING with
// no further event becomes NO ANSWER (checked first, so it wins over a
// prior busy event); otherwise a prior busy event gives BUSY; any status
// other than ANSWERED, NO ANSWER or PICKUP falls back to EXIT.
func (d *Dial) Finish() {
	d.Channel.CurrentDial = nil
	switch {
	case string(d.status) == "RINGING":
		d.status = []byte("NO ANSWER")
	case d.wasBusy:
		d.status = []byte("BUSY")
	case string(d.status) != "ANSWERED" && string(d.status) != "NO ANSWER" && string(d.status) != "PICKUP":
		d.status = []byte("EXIT")
	}
}
