// Package graph reconstructs the connected component of call-flow
// entities reachable from a single starting reference (a phone number,
// channel name, queue name, or call-id) by mutually recursive expansion
// across SIP messages, AstCalls, and channels.
package graph

import (
	"sort"

	"github.com/mbonnet/astgraph/internal/callgraph"
)

// IsolateKind names what Isolation.Ref identifies, mirroring the four
// reference kinds the original viewer's isolate filter accepts.
type IsolateKind int

const (
	IsolateNone IsolateKind = iota
	IsolateCallID
	IsolateSipRef
	IsolateChannel
	IsolateACallID
)

// Isolation restricts Traverse's result to the single group containing
// the named object, if any. The zero value (IsolateNone) means "return
// every group".
type Isolation struct {
	Kind IsolateKind
	Ref  string
}

// traversal holds the per-call mutable state the recursive add* helpers
// share: the store being walked, the depth cutoff, and the visited sets
// that keep the walk from both looping forever and duplicating work.
type traversal struct {
	store    *callgraph.Store
	maxDepth int

	groups []*callgraph.Group

	markCall    map[string]struct{}
	markSip     map[*callgraph.SipMessage]struct{}
	markACall   map[*callgraph.AstCall]struct{}
	markChannel map[*callgraph.Channel]struct{}
}

// Traverse walks the store outward from ref (a phone number, channel
// name, queue name, or call-id — every kind that matches seeds its own
// groups, in linkAll's order) up to maxDepth hops, returning the resulting groups (optionally
// narrowed to the one group isolate names) and a flattened line-number ->
// (style, line) index built from every group, the same shape the
// original viewer renders directly against the raw log.
func Traverse(store *callgraph.Store, ref string, isolate Isolation, maxDepth int) ([]*callgraph.Group, map[int]callgraph.GroupLine) {
	t := &traversal{
		store:       store,
		maxDepth:    maxDepth,
		markCall:    make(map[string]struct{}),
		markSip:     make(map[*callgraph.SipMessage]struct{}),
		markACall:   make(map[*callgraph.AstCall]struct{}),
		markChannel: make(map[*callgraph.Channel]struct{}),
	}

	t.linkAll(ref)
	groups := t.isolateGroups(isolate)
	return groups, flatten(groups)
}

func flatten(groups []*callgraph.Group) map[int]callgraph.GroupLine {
	objs := make(map[int]callgraph.GroupLine)
	for _, g := range groups {
		for lineNo, gl := range g.Lines {
			objs[lineNo] = gl
		}
	}
	return objs
}

// includeDialogSips expands sips to also cover every other message in
// each one's dialog, so a single matched SIP message pulls in its whole
// transaction.
func includeDialogSips(sips []*callgraph.SipMessage) []*callgraph.SipMessage {
	all := make(map[*callgraph.SipMessage]struct{}, len(sips))
	for _, s := range sips {
		all[s] = struct{}{}
	}
	for _, s := range sips {
		if s.Dialog != nil {
			for _, d := range s.Dialog.SipList {
				all[d] = struct{}{}
			}
		}
	}
	out := make([]*callgraph.SipMessage, 0, len(all))
	for s := range all {
		out = append(out, s)
	}
	return out
}

func (t *traversal) currentGroup() *callgraph.Group {
	return t.groups[len(t.groups)-1]
}

func (t *traversal) addSip(sip *callgraph.SipMessage, level int) {
	if sip == nil || level > t.maxDepth {
		return
	}
	if _, seen := t.markSip[sip]; seen {
		return
	}
	t.markSip[sip] = struct{}{}

	g := t.currentGroup()
	g.Line(sip.LineNo, "sip", sip)

	if _, seen := t.markCall[sip.CallID]; !seen {
		t.markCall[sip.CallID] = struct{}{}
		start := sip
		if sip.Dialog != nil && sip.Dialog.StartSip() != nil {
			start = sip.Dialog.StartSip()
		}
		g.Append(start.LineNo, "dialog", start)
		for _, lr := range t.store.CallLines[sip.CallID] {
			g.Line(lr.LineNo, "verbose", lr.Line)
		}
	}

	t.addACall(sip.ACall, level+1)
	for acall := range t.store.CallACallMap[sip.CallID] {
		t.addACall(acall, level+1)
	}

	for _, s := range includeDialogSips([]*callgraph.SipMessage{sip}) {
		t.addSip(s, level+1)
	}
}

func (t *traversal) addACall(acall *callgraph.AstCall, level int) {
	if acall == nil || level > t.maxDepth {
		return
	}
	if _, seen := t.markACall[acall]; seen {
		return
	}
	t.markACall[acall] = struct{}{}

	g := t.currentGroup()
	minLineNo := -1
	for _, lr := range acall.Lines {
		g.Line(lr.LineNo, "verbose", lr.Line)
		if minLineNo == -1 || lr.LineNo < minLineNo {
			minLineNo = lr.LineNo
		}
	}
	if minLineNo != -1 {
		g.Append(minLineNo, "astcall", acall)
	}

	for channel := range acall.ChannelSet {
		t.addChannel(channel, level+1)
	}

	sipSet := make(map[*callgraph.SipMessage]struct{}, len(acall.SipSet))
	for s := range acall.SipSet {
		sipSet[s] = struct{}{}
	}
	for callID := range acall.CallIDSet {
		for _, s := range t.store.CallSipMap[callID] {
			sipSet[s] = struct{}{}
		}
	}
	sipList := make([]*callgraph.SipMessage, 0, len(sipSet))
	for s := range sipSet {
		sipList = append(sipList, s)
	}
	sipList = includeDialogSips(sipList)
	sort.Slice(sipList, func(i, j int) bool { return sipList[i].LineNo < sipList[j].LineNo })
	for _, s := range sipList {
		t.addSip(s, level+1)
	}
}

func (t *traversal) addChannel(channel *callgraph.Channel, level int) {
	if channel == nil || level > t.maxDepth {
		return
	}
	if _, seen := t.markChannel[channel]; seen {
		return
	}
	t.markChannel[channel] = struct{}{}

	g := t.currentGroup()
	minLineNo := -1
	for _, lr := range channel.Lines {
		g.Line(lr.LineNo, "channel", lr.Line)
		if minLineNo == -1 || lr.LineNo < minLineNo {
			minLineNo = lr.LineNo
		}
	}
	if minLineNo != -1 {
		g.Append(minLineNo, "channel", channel)
	}

	for acall := range channel.ACallSet {
		t.addACall(acall, level+1)
	}

	sips := make([]*callgraph.SipMessage, 0, len(channel.SipSet))
	for s := range channel.SipSet {
		sips = append(sips, s)
	}
	sort.Slice(sips, func(i, j int) bool { return sips[i].LineNo < sips[j].LineNo })
	for _, s := range sips {
		t.addSip(s, level+1)
	}
}

// linkAll seeds one group per matching phone/channel/queue/call-id entry
// point, in that priority order — exactly the original's seed-construction
// order, which is also its display order before isolation narrows it.
func (t *traversal) linkAll(ref string) {
	if sips := t.store.PhoneSipMap[ref]; len(sips) > 0 {
		sipList := includeDialogSips(sips)
		sort.Slice(sipList, func(i, j int) bool { return sipList[i].LineNo < sipList[j].LineNo })
		for _, sip := range sipList {
			t.groups = append(t.groups, callgraph.NewGroup())
			t.addSip(sip, 0)
		}
	}

	if channels := t.store.PhoneChannelMap[ref]; len(channels) > 0 {
		list := make([]*callgraph.Channel, 0, len(channels))
		for c := range channels {
			list = append(list, c)
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].When != list[j].When {
				return list[i].When < list[j].When
			}
			return list[i].Name < list[j].Name
		})
		for _, channel := range list {
			t.groups = append(t.groups, callgraph.NewGroup())
			t.addChannel(channel, 0)
		}
	}

	if queues := t.store.Queues[ref]; len(queues) > 0 {
		for _, queue := range queues {
			t.groups = append(t.groups, callgraph.NewGroup())
			t.addChannel(queue.Channel, 0)
		}
	}

	if channel, ok := t.store.Channels[ref]; ok {
		t.groups = append(t.groups, callgraph.NewGroup())
		t.addChannel(channel, 0)
	}

	if sips := t.store.CallSipMap[ref]; len(sips) > 0 {
		t.groups = append(t.groups, callgraph.NewGroup())
		t.addSip(sips[0], 0)
	}
}

// isolateGroups drops empty groups, sorts each remaining group's
// overview and the group list itself by first-line-number, then — if
// isolate names a reference — returns only the FIRST group containing a
// matching overview entry, matching the original's early `return [g]`
// rather than collecting every matching group.
func (t *traversal) isolateGroups(isolate Isolation) []*callgraph.Group {
	var kept []*callgraph.Group
	for _, g := range t.groups {
		if len(g.Overview) > 0 {
			kept = append(kept, g)
		}
	}
	for _, g := range kept {
		g.Sort()
	}
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Overview[0].LineNo < kept[j].Overview[0].LineNo
	})

	if isolate.Kind == IsolateNone {
		return kept
	}

	var find string
	var obj any
	switch isolate.Kind {
	case IsolateCallID:
		find = "dialog"
		if dialog, ok := t.store.Dialogs[isolate.Ref]; ok {
			obj = dialog.StartSip()
		}
	case IsolateSipRef:
		find = "dialog"
		if sip := t.store.FindSipByRef(isolate.Ref); sip != nil {
			if sip.Dialog != nil && sip.Dialog.StartSip() != nil {
				obj = sip.Dialog.StartSip()
			} else {
				obj = sip
			}
		}
	case IsolateChannel:
		find = "channel"
		if channel, ok := t.store.Channels[isolate.Ref]; ok {
			obj = channel
		}
	case IsolateACallID:
		find = "astcall"
		if acall, ok := t.store.ACalls[isolate.Ref]; ok {
			obj = acall
		}
	}

	if obj == nil {
		return kept
	}
	for _, g := range kept {
		for _, entry := range g.Overview {
			if entry.Kind == find && entry.Obj == obj {
				return []*callgraph.Group{g}
			}
		}
	}
	return nil
}
