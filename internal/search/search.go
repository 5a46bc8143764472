// Package search exposes the read-only lookup and query operations a
// viewer runs against a populated Store: the set of known phone/channel/
// queue identifiers, substring/exact search, and direct lookup by kind.
package search

import (
	"github.com/mbonnet/astgraph/internal/callgraph"
)

// FindKind selects which entity map Find looks an id up in.
type FindKind int

const (
	FindChannel FindKind = iota
	FindACall
	FindSipRef
	FindCallID
)

// PhoneSet returns every phone/extension/queue-name identifier known to
// store.
func PhoneSet(store *callgraph.Store) []string {
	return store.PhoneSet()
}

// Search runs the plain-text query the viewer's search box issues:
// exact channel name, exact call-id, and substring-matched phone
// numbers, sorted.
func Search(store *callgraph.Store, number, chanName, callID string) []string {
	return store.Search(number, chanName, callID)
}

// Find looks up a single entity by kind and id, returning it and whether
// it was found.
func Find(store *callgraph.Store, kind FindKind, id string) (any, bool) {
	switch kind {
	case FindChannel:
		c, ok := store.Channels[id]
		return c, ok
	case FindACall:
		a, ok := store.ACalls[id]
		return a, ok
	case FindSipRef:
		sip := store.FindSipByRef(id)
		return sip, sip != nil
	case FindCallID:
		d, ok := store.Dialogs[id]
		return d, ok
	}
	return nil, false
}
