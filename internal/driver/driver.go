package driver

import (
	"bytes"

	"github.com/mbonnet/astgraph/internal/callgraph"
	"github.com/mbonnet/astgraph/internal/logtext"
	"github.com/mbonnet/astgraph/internal/sipmsg"
	"github.com/mbonnet/astgraph/internal/subparsers"
)

// progressInterval is how often, in lines, Run reports progress.
const progressInterval = 10000

// Result is what a single pass over one log's bytes produces: the
// populated Store plus the first and last timestamps observed, which the
// CDR enrichment pass needs as its own window bounds.
type Result struct {
	Store     *callgraph.Store
	FirstWhen string
	LastWhen  string
}

// Run walks data line by line exactly once, in order, threading the
// current timestamp and AstCall, feeding an in-flight SIP message to its
// assembler when one is open, and otherwise dispatching each verbose
// line to whichever sub-parser its module tag names. progress, if
// non-nil, is called every 10,000 lines and once more at the end.
func Run(data []byte, progress ProgressFunc) (Result, error) {
	store := callgraph.NewStore()
	total := int64(len(data))

	var when, firstWhen string
	var acall *callgraph.AstCall
	var asm *sipmsg.Assembler

	lineNo := -1
	for pos := 0; pos < len(data); {
		lineNo++
		var line []byte
		line, pos = logtext.NextLine(data, pos)

		if progress != nil && lineNo%progressInterval == 0 {
			progress("log", lineNo, int64(pos), total)
		}

		// A SIP message is being assembled: every line belongs to it
		// until AddLine says otherwise, at which point the line that
		// ended it (often the next message's own intro banner) is
		// dropped rather than reprocessed as a banner candidate. This
		// mirrors the reference loop's `if not sip.add_line(line):
		// finish_sip(sip); sip = None; continue` — the continue is the
		// part that matters, not a fallthrough into banner detection.
		if asm != nil {
			if !asm.AddLine(line) {
				store.FinishSip(asm.Message())
				asm = nil
			}
			continue
		}

		// Timestamped lines (VERBOSE/WARNING/ERROR banners carrying a
		// module tag) and raw SIP intro banners are mutually exclusive
		// top-level cases, exactly as the reference loop's if/elif
		// structures them — a SIP banner line carries no '[' timestamp
		// of its own and reuses whatever `when` the last timestamped
		// line set.
		switch {
		case len(line) > 0 && line[0] == '[':
			closeIdx := boundedIndex(line, []byte("]"), 5, len(line))
			if closeIdx < 0 {
				continue
			}
			when = string(line[1:closeIdx])
			if firstWhen == "" {
				firstWhen = when
			}

			var linePos int
			acall, linePos = linkACall(store, lineNo, line, when)

			if idx := bytes.Index(line[linePos:], []byte("chan_sip.c:")); idx >= 0 {
				p := idx + linePos + 11
				if sip := subparsers.ChanSipC(store, lineNo, line, p, when, acall); sip != nil {
					asm = sipmsg.New(sip)
				}
				continue
			}
			if idx := bytes.Index(line[linePos:], []byte("pbx.c:")); idx >= 0 {
				subparsers.PbxC(store, lineNo, line, idx+linePos+6, when, acall)
				continue
			}
			if idx := bytes.Index(line[linePos:], []byte("app_dial.c:")); idx >= 0 {
				subparsers.AppDialC(store, lineNo, line, idx+linePos+11, when, acall)
				continue
			}
			if idx := bytes.Index(line[linePos:], []byte("features.c:")); idx >= 0 {
				subparsers.FeaturesC(store, lineNo, line, idx+linePos+11, when, acall)
				continue
			}
			if idx := bytes.Index(line[linePos:], []byte("app_queue.c:")); idx >= 0 {
				subparsers.AppQueueC(store, lineNo, line, idx+linePos+12, when, acall)
				continue
			}
			if idx := bytes.Index(line[linePos:], []byte("manager.c:")); idx >= 0 {
				subparsers.ManagerC(store, lineNo, line, idx+linePos+10, when, acall)
				continue
			}

		case bytes.HasPrefix(line, []byte("<--- SIP read from")):
			peerAddr, _, ok := logtext.Delimited(line, []byte(":"), []byte(" "), 18)
			if !ok {
				continue
			}
			sip := store.NewSip(lineNo+1, "IN", peerAddr, false, when, acall, nil)
			asm = sipmsg.New(sip)

		case bytes.HasPrefix(line, []byte("<--- Reliably Transmitting")):
			peerAddr, _, ok := logtext.Delimited(line, []byte(" to "), []byte(" "), 26)
			if !ok {
				continue
			}
			isNat := bytes.Contains(line, []byte("(NAT)"))
			sip := store.NewSip(lineNo+1, "OUT", peerAddr, isNat, when, acall, nil)
			asm = sipmsg.New(sip)

		case bytes.HasPrefix(line, []byte("<--- Transmitting")):
			peerAddr, _, ok := logtext.Delimited(line, []byte(" to "), []byte(" "), 17)
			if !ok {
				continue
			}
			isNat := bytes.Contains(line, []byte("(NAT)"))
			sip := store.NewSip(lineNo+1, "OUT", peerAddr, isNat, when, acall, nil)
			asm = sipmsg.New(sip)
		}
	}

	if asm != nil {
		store.FinishSip(asm.Message())
	}
	store.TotalLines = lineNo + 1

	if progress != nil {
		progress("log", lineNo+1, total, total)
	}

	return Result{Store: store, FirstWhen: firstWhen, LastWhen: when}, nil
}

// linkACall finds the bracketed AstCall id on a VERBOSE/WARNING/ERROR
// line (e.g. "VERBOSE[12345][C-00001b2c]"), registering the line against
// that AstCall, and returns the position right after the id's closing
// bracket so callers can keep scanning for a module tag from there. It
// returns (nil, 0) if the line carries none of those three markers, and a
// nil AstCall with the scan position reached so far if the bracket
// structure doesn't match — a line that merely failed to match
// one of these patterns is not malformed, just not call-scoped (e.g. a
// banner or startup message), so this is not an error case.
func linkACall(store *callgraph.Store, lineNo int, line []byte, when string) (*callgraph.AstCall, int) {
	idx := bytes.Index(line, []byte("VERBOSE["))
	tagLen := 8
	if idx < 0 {
		idx = bytes.Index(line, []byte("WARNING["))
		if idx < 0 {
			idx = bytes.Index(line, []byte("ERROR["))
			tagLen = 6
		}
	}
	if idx < 0 {
		return nil, 0
	}

	pos := idx + tagLen
	closeIdx := boundedIndex(line, []byte("]["), pos, pos+10)
	if closeIdx < 0 {
		return nil, pos
	}
	pos = closeIdx + 2

	idIdx := boundedIndex(line, []byte("]"), pos, pos+15)
	if idIdx < 0 {
		return nil, pos
	}

	acallID := string(line[pos:idIdx])
	acall := store.LinkACall(acallID, lineNo, line, when)
	return acall, idIdx + 1
}

// boundedIndex finds sub within line[start:end], clamped to line's
// bounds, returning an absolute index into line or -1.
func boundedIndex(line, sub []byte, start, end int) int {
	if start < 0 {
		start = 0
	}
	if end > len(line) {
		end = len(line)
	}
	if start >= end {
		return -1
	}
	idx := bytes.Index(line[start:end], sub)
	if idx < 0 {
		return -1
	}
	return idx + start
}
