package callgraph

import "sort"

// OverviewEntry is one top-level object a Group surfaces (a dialog,
// channel, or AstCall), ordered by the line number it was first
// encountered at.
type OverviewEntry struct {
	LineNo int
	Kind   string // "dialog", "channel", "astcall"
	Obj    any
}

// GroupLine is one raw log line a Group collected, tagged with the kind
// of entity that contributed it.
type GroupLine struct {
	Style string // "sip", "verbose", "channel"
	Line  any    // []byte for verbose/channel, *SipMessage for sip
}

// Group is one connected component of the call graph reached by
// traversal: a set of related dialogs/channels/AstCalls and every raw
// line any of them touched.
type Group struct {
	Overview []OverviewEntry
	Lines    map[int]GroupLine
}

// NewGroup starts an empty group.
func NewGroup() *Group {
	return &Group{Lines: make(map[int]GroupLine)}
}

// Append records a top-level object in the overview.
func (g *Group) Append(lineNo int, kind string, obj any) {
	g.Overview = append(g.Overview, OverviewEntry{lineNo, kind, obj})
}

// Line records a raw line. A "verbose" line never overwrites an existing
// entry at the same line number; any other style always wins, matching
// the "channel wins over verbose, verbose never overwrites" rule: verbose
// lines are the generic catch-all collected from AstCall/channel
// scanning, while sip/channel-styled lines carry more specific context
// and should take precedence when both are seen for the same line.
func (g *Group) Line(lineNo int, style string, line any) {
	if style == "verbose" {
		if _, exists := g.Lines[lineNo]; exists {
			return
		}
	}
	g.Lines[lineNo] = GroupLine{Style: style, Line: line}
}

// Sort orders the overview by line number, the order it is displayed in.
func (g *Group) Sort() {
	sort.Slice(g.Overview, func(i, j int) bool {
		return g.Overview[i].LineNo < g.Overview[j].LineNo
	})
}
