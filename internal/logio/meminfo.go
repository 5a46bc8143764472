package logio

import (
	"os"
	"regexp"
	"strconv"
)

// memTotalPattern is the one regular expression this module uses: every
// other extraction in the engine is done with byte-offset scanning
// instead, because regexp overhead matters on a per-line hot path but
// does not matter for a one-shot /proc/meminfo read.
var memTotalPattern = regexp.MustCompile(`(?m)^MemTotal:\s+(\d+)`)

// TotalMemory returns the system's total memory in bytes, read from
// /proc/meminfo. It returns ok=false on any platform or environment where
// that file is unavailable or unparsable, so callers can skip the memory
// ceiling check rather than fail.
func TotalMemory() (bytes uint64, ok bool) {
	data, err := os.ReadFile("/proc/meminfo")
	if err != nil {
		return 0, false
	}
	m := memTotalPattern.FindSubmatch(data)
	if m == nil {
		return 0, false
	}
	kb, err := strconv.ParseUint(string(m[1]), 10, 64)
	if err != nil {
		return 0, false
	}
	return kb * 1024, true
}
