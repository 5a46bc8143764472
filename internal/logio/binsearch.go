package logio

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/mbonnet/astgraph/internal/logtext"
	"github.com/mbonnet/astgraph/internal/logtime"
)

type Direction int

const (
	DirectionAfter Direction = iota
	DirectionBefore
)

const probeWindow = 64000

// FindFilePosition binary-searches f for the byte offset of the first
// (direction=after) or last (direction=before) line whose timestamp
// satisfies the comparison against when, within 40 probes of a fixed
// 64KB window. isCDR selects whether the probe parses a log timestamp
// banner or a CDR CSV row.
func FindFilePosition(f Source, fileSize int64, when string, dir Direction, isCDR bool) (int64, bool) {
	ts, ok := logtime.Parse(when)
	if !ok {
		return 0, false
	}

	a, b := int64(0), fileSize
	filePos := int64(0)
	goodPos := int64(0)
	found := false

	buf := make([]byte, probeWindow)
	for i := 0; i < 40; i++ {
		newFilePos := a + (b-a)/2
		if newFilePos == filePos && i > 0 {
			break
		}
		filePos = newFilePos

		n, err := f.ReadAt(buf, filePos)
		if n == 0 && err != nil && err != io.EOF {
			break
		}
		data := buf[:n]

		var w string
		var pos int64
		if isCDR {
			w, pos = readCDRWhen(data)
		} else {
			w, pos = readWhen(data)
		}
		if w == "" {
			break
		}
		t, ok := logtime.Parse(w)
		if !ok {
			break
		}

		if dir == DirectionAfter {
			if !t.Before(ts) {
				goodPos = filePos + pos
				found = true
				b = filePos
			} else {
				a = filePos
			}
		} else {
			if !t.After(ts) {
				goodPos = filePos + pos
				found = true
				a = filePos
			} else {
				b = filePos
			}
		}
		if b == a {
			break
		}
	}

	return goodPos, found
}

// readWhen scans data for the first line beginning with '[' and returns
// the bracketed timestamp plus that line's starting offset within data.
func readWhen(data []byte) (when string, linePos int64) {
	pos := 0
	for pos < len(data) {
		start := pos
		line, next := logtext.NextLine(data, pos)
		pos = next
		if len(line) > 0 && line[0] == '[' {
			if idx := bytes.IndexByte(line, ']'); idx > 0 {
				return string(line[1:idx]), int64(start)
			}
		}
	}
	return "", 0
}

// readCDRWhen scans data for the first well-formed CSV row (at least 16
// fields) and returns its start-time column (index 9) plus the line's
// starting offset.
func readCDRWhen(data []byte) (when string, linePos int64) {
	pos := 0
	for pos < len(data) {
		start := pos
		line, next := logtext.NextLine(data, pos)
		pos = next
		if len(line) == 0 {
			continue
		}
		row, err := csv.NewReader(strings.NewReader(string(line))).Read()
		if err != nil || len(row) < 16 {
			continue
		}
		startWhen, endWhen := row[9], row[10]
		if _, ok := logtime.Parse(startWhen); !ok {
			continue
		}
		if _, ok := logtime.Parse(endWhen); !ok {
			continue
		}
		return startWhen, int64(start)
	}
	return "", 0
}
