package logio

import (
	"bytes"
	"testing"
)

type testSource struct {
	*bytes.Reader
}

func (s testSource) Size() int64  { return s.Reader.Size() }
func (s testSource) Close() error { return nil }

func newTestSource(lines ...string) testSource {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return testSource{bytes.NewReader(buf.Bytes())}
}

func TestFindFilePositionAfter(t *testing.T) {
	src := newTestSource(
		"[2024-03-05 12:00:00.000000] VERBOSE[100] one",
		"[2024-03-05 12:00:10.000000] VERBOSE[100] two",
		"[2024-03-05 12:00:20.000000] VERBOSE[100] three",
		"[2024-03-05 12:00:30.000000] VERBOSE[100] four",
	)

	pos, ok := FindFilePosition(src, src.Size(), "2024-03-05 12:00:15", DirectionAfter, false)
	if !ok {
		t.Fatal("FindFilePosition should find a position after the requested time")
	}
	when, _ := readWhen(mustReadAt(t, src, pos))
	if when != "2024-03-05 12:00:20.000000" {
		t.Errorf("line at found position = %q, want the first line at/after 12:00:15", when)
	}
}

func TestFindFilePositionBefore(t *testing.T) {
	src := newTestSource(
		"[2024-03-05 12:00:00.000000] VERBOSE[100] one",
		"[2024-03-05 12:00:10.000000] VERBOSE[100] two",
		"[2024-03-05 12:00:20.000000] VERBOSE[100] three",
		"[2024-03-05 12:00:30.000000] VERBOSE[100] four",
	)

	pos, ok := FindFilePosition(src, src.Size(), "2024-03-05 12:00:15", DirectionBefore, false)
	if !ok {
		t.Fatal("FindFilePosition should find a position before the requested time")
	}
	when, _ := readWhen(mustReadAt(t, src, pos))
	if when != "2024-03-05 12:00:10.000000" {
		t.Errorf("line at found position = %q, want the last line at/before 12:00:15", when)
	}
}

func TestFindFilePositionFailsOnGarbageWhen(t *testing.T) {
	src := newTestSource("[2024-03-05 12:00:00.000000] VERBOSE[100] one")
	if _, ok := FindFilePosition(src, src.Size(), "not a timestamp", DirectionAfter, false); ok {
		t.Error("FindFilePosition should fail when the requested timestamp doesn't parse")
	}
}

func mustReadAt(t *testing.T, src testSource, pos int64) []byte {
	t.Helper()
	buf := make([]byte, src.Size()-pos)
	n, err := src.ReadAt(buf, pos)
	if err != nil && n == 0 {
		t.Fatalf("ReadAt failed: %v", err)
	}
	return buf[:n]
}

func TestReadWhenSkipsNonBracketLines(t *testing.T) {
	data := []byte("junk line without a bracket\n[2024-03-05 12:00:00.000000] VERBOSE[100] hi\n")
	when, _ := readWhen(data)
	if when != "2024-03-05 12:00:00.000000" {
		t.Errorf("readWhen = %q, want the first bracketed timestamp", when)
	}
}

func TestReadCDRWhenFindsFirstWellFormedRow(t *testing.T) {
	short := "a,b,c\n"
	row := "acc,src,dst,ctx,clid,chan,dstchan,lastapp,lastdata,2024-03-05 12:00:00,2024-03-05 12:00:05,2024-03-05 12:00:10,10,5,ANSWERED,DOCUMENTATION\n"
	data := []byte(short + row)

	when, _ := readCDRWhen(data)
	if when != "2024-03-05 12:00:00" {
		t.Errorf("readCDRWhen = %q, want %q", when, "2024-03-05 12:00:00")
	}
}
