package callgraph

import "testing"

func TestGroupLineVerboseNeverOverwrites(t *testing.T) {
	g := NewGroup()
	g.Line(5, "verbose", []byte("generic"))
	g.Line(5, "sip", "specific")

	if g.Lines[5].Style != "sip" {
		t.Errorf("sip should win when recorded after verbose, got %q", g.Lines[5].Style)
	}

	g.Line(5, "verbose", []byte("generic again"))
	if g.Lines[5].Style != "sip" {
		t.Errorf("verbose must not overwrite an existing sip entry, got %q", g.Lines[5].Style)
	}
}

func TestGroupLineVerboseDoesNotOverwriteItself(t *testing.T) {
	g := NewGroup()
	g.Line(5, "verbose", []byte("first"))
	g.Line(5, "verbose", []byte("second"))

	if string(g.Lines[5].Line.([]byte)) != "first" {
		t.Errorf("second verbose write should be dropped, got %q", g.Lines[5].Line)
	}
}

func TestGroupSortOrdersByLineNo(t *testing.T) {
	g := NewGroup()
	g.Append(30, "channel", nil)
	g.Append(10, "dialog", nil)
	g.Append(20, "astcall", nil)
	g.Sort()

	want := []int{10, 20, 30}
	for i, w := range want {
		if g.Overview[i].LineNo != w {
			t.Errorf("Overview[%d].LineNo = %d, want %d", i, g.Overview[i].LineNo, w)
		}
	}
}
