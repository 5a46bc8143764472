// Package logio implements the windowed, memory-bounded read of the log
// file (and the equivalent CDR probe) described by the binary-search
// positioning algorithm: rather than loading an entire multi-gigabyte log,
// it locates the byte offsets bounding the requested time window and
// reads only that span, refusing to proceed if the span would still be
// too large relative to system memory.
package logio

import (
	"io"
	"time"

	"github.com/mbonnet/astgraph/internal/logtime"
	"github.com/mbonnet/astgraph/internal/parseerr"
)

// Options configures a single windowed read of the log file.
type Options struct {
	Path string

	FromWhen    string // "" if unset
	ToWhen      string // "" if unset
	TailMinutes int    // 0 if unset

	// UseMemoryPct bounds how much of system memory the loaded window
	// (raw bytes plus the parsed graph built from them) may occupy,
	// clamped to [5, 75] the same way the original viewer clamps it.
	UseMemoryPct int
}

func clampMemoryPct(pct int) int {
	if pct <= 0 {
		pct = 5
	}
	if pct < 5 {
		pct = 5
	}
	if pct > 75 {
		pct = 75
	}
	return pct
}

// Result is the byte window read from the log file, along with the
// resolved from/to window actually used (tail-minutes resolves to a
// concrete FromWhen).
type Result struct {
	Data     []byte
	FromWhen string
	ToWhen   string
}

// Read opens opt.Path and returns the byte span covering the requested
// time window, honoring tail-minutes, from/to, and the memory ceiling.
func Read(opt Options) (Result, error) {
	f, err := OpenSource(opt.Path)
	if err != nil {
		return Result{}, parseerr.New(parseerr.FileNotFound, "no such file: %s", opt.Path)
	}
	defer f.Close()

	fileSize := f.Size()

	fromWhen := opt.FromWhen
	toWhen := opt.ToWhen

	if opt.TailMinutes > 0 {
		tailStart := fileSize - 32000
		if tailStart < 0 {
			tailStart = 0
		}
		buf := make([]byte, fileSize-tailStart)
		if _, err := f.ReadAt(buf, tailStart); err != nil && err != io.EOF {
			return Result{}, err
		}
		when, _ := readWhen(buf)
		if when != "" {
			if lateTS, ok := logtime.Parse(when); ok {
				startTS := lateTS.Add(-time.Duration(opt.TailMinutes) * time.Minute)
				fromWhen = formatWhen(startTS)
				toWhen = ""
			}
		}
	}

	var startPos int64
	if fromWhen != "" {
		pos, ok := FindFilePosition(f, fileSize, fromWhen, DirectionAfter, false)
		if !ok {
			return Result{}, parseerr.New(parseerr.NoDataInRange, "no data after %s", fromWhen)
		}
		startPos = pos
	}

	numBytes := int64(-1)
	if toWhen != "" {
		finishPos, ok := FindFilePosition(f, fileSize, toWhen, DirectionBefore, false)
		if !ok {
			return Result{}, parseerr.New(parseerr.NoDataInRange, "no data before %s", toWhen)
		}
		numBytes = finishPos - startPos + 16000
		if numBytes < 0 {
			return Result{}, parseerr.New(parseerr.MalformedWindow, "negative number of bytes is specified")
		}
	}

	var size int64
	if numBytes == -1 {
		size = fileSize - startPos
	} else {
		size = numBytes
	}

	memPct := clampMemoryPct(opt.UseMemoryPct)
	if memTotal, ok := TotalMemory(); ok {
		if size*2 > int64(memPct)*int64(memTotal)/100 {
			return Result{}, parseerr.New(parseerr.MemoryRefusal,
				"refusing to analyse: too much data, more than %d%% of system memory", memPct)
		}
	}

	if numBytes == -1 {
		numBytes = fileSize - startPos
	}
	if numBytes > fileSize-startPos {
		numBytes = fileSize - startPos
	}
	data := make([]byte, numBytes)
	if numBytes > 0 {
		if _, err := f.ReadAt(data, startPos); err != nil && err != io.EOF {
			return Result{}, err
		}
	}

	return Result{Data: data, FromWhen: fromWhen, ToWhen: toWhen}, nil
}

func formatWhen(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.999999")
}
