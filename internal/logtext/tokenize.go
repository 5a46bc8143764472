// Package logtext holds the small byte-oriented string helpers the parser
// leans on instead of regexp: line splitting and delimited substring
// extraction, both hot-path operations run once per log line.
package logtext

import "bytes"

// NextLine returns the line starting at pos, advancing past its
// terminator. A trailing '\r' is stripped. A final, unterminated partial
// line (no trailing '\n') is discarded: it returns an empty line and a
// position at the end of data, since a log write in progress should not
// be parsed as a complete record.
func NextLine(data []byte, pos int) (line []byte, next int) {
	eol := bytes.IndexByte(data[pos:], '\n')
	if eol == -1 {
		return nil, len(data)
	}
	eol += pos
	end := eol
	if end > pos && data[end-1] == '\r' {
		end--
	}
	return data[pos:end], eol + 1
}

// Delimited returns the substring between the first occurrence of left
// (searched from start) and the following occurrence of right, along with
// the position of the right delimiter. ok is false if either delimiter is
// missing.
func Delimited(line, left, right []byte, start int) (value []byte, end int, ok bool) {
	return delimited(line, left, right, start, len(line), false)
}

// DelimitedIn is Delimited restricted to line[:limit] for the left-delimiter
// search, matching Python's str.find(sub, start, end) two-bound form.
func DelimitedIn(line, left, right []byte, start, limit int) (value []byte, end int, ok bool) {
	return delimited(line, left, right, start, limit, false)
}

// DelimitedOrRest behaves like Delimited but returns the remainder of line
// (and ok=true) when the right delimiter cannot be found.
func DelimitedOrRest(line, left, right []byte, start int) (value []byte, end int, ok bool) {
	return delimited(line, left, right, start, len(line), true)
}

func delimited(line, left, right []byte, start, limit int, rest bool) ([]byte, int, bool) {
	if start < 0 || start > len(line) {
		return nil, 0, false
	}
	hay := line[:min(limit, len(line))]
	a := indexFrom(hay, left, start)
	if a < 0 {
		return nil, 0, false
	}
	a += len(left)
	b := bytes.Index(line[a:], right)
	if b >= 0 {
		return line[a : a+b], a + b, true
	}
	if rest {
		return line[a:], len(line), true
	}
	return nil, 0, false
}

func indexFrom(hay, sep []byte, start int) int {
	if start >= len(hay) {
		return -1
	}
	idx := bytes.Index(hay[start:], sep)
	if idx < 0 {
		return -1
	}
	return idx + start
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
