package callgraph

import "github.com/mbonnet/astgraph/internal/logtext"

// Queue models one execution of the Queue() application.
type Queue struct {
	Channel   *Channel
	LineNo    int
	When      string
	Extension string
	Name      string
	log       []AppEvent
	status    []byte
}

func newQueue(channel *Channel, lineNo int, when, extension, name string) *Queue {
	return &Queue{
		Channel:   channel,
		LineNo:    lineNo,
		When:      when,
		Extension: extension,
		Name:      name,
		status:    []byte("ACTIVE"),
	}
}

func (q *Queue) AppName() string { return "Queue" }
func (q *Queue) Data() []byte    { return []byte(q.Name) }
func (q *Queue) Status() []byte  { return q.status }
func (q *Queue) Log() []AppEvent { return q.log }

func (q *Queue) Ringing(lineNo int, when string, chanName []byte) {
	phone := logtext.ChannelPhone(chanName)
	q.log = append(q.log, AppEvent{lineNo, when, "RINGING", phone, chanName})
	if string(q.status) == "ACTIVE" {
		q.status = []byte("RINGING")
	}
}

// Position records the caller's place in the queue, guarded to the
// channel the queue was started on.
func (q *Queue) Position(lineNo int, when string, chanName, position []byte) {
	if string(chanName) != q.Channel.Name {
		return
	}
	q.log = append(q.log, AppEvent{lineNo, when, "POSITION", position, chanName})
}

func (q *Queue) Pickup(lineNo int, when string, ringingChan, pickedByChan []byte) {
	phone := logtext.ChannelPhone(ringingChan)
	q.log = append(q.log, AppEvent{lineNo, when, "PICKUP", phone, ringingChan})
	q.status = []byte("PICKUP")
}

func (q *Queue) Answered(lineNo int, when string, chan1, chan2 []byte) {
	if string(chan1) != q.Channel.Name {
		return
	}
	phone := logtext.ChannelPhone(chan2)
	q.log = append(q.log, AppEvent{lineNo, when, "ANSWERED", phone, chan2})
	q.status = []byte("ANSWERED")
}
