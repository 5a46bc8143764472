// Package logtime parses the handful of timestamp formats that appear in
// Asterisk verbose logs and CDR files.
package logtime

import (
	"time"
)

// layouts mirrors the order Asterisk itself tries when formatting a
// timestamp: full date with fractional seconds, full date without, and
// the two syslog-style "month day time" variants used by older logs that
// were rotated without a year in the prefix.
var layouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"Jan _2 15:04:05.999999",
	"Jan _2 15:04:05",
}

// syslogLayouts is the subset of layouts that omit a year; Parse fills in
// the current year for these, matching the assumption the log itself makes.
var syslogLayouts = map[string]bool{
	"Jan _2 15:04:05.999999": true,
	"Jan _2 15:04:05":        true,
}

// Parse attempts each known layout in turn and reports the first match.
// An empty or unrecognized string yields ok=false; callers must treat
// missing timestamps as "unknown", never as the zero time.
func Parse(when string) (t time.Time, ok bool) {
	if when == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, when)
		if err != nil {
			continue
		}
		if syslogLayouts[layout] {
			parsed = parsed.AddDate(time.Now().Year()-parsed.Year(), 0, 0)
		}
		return parsed, true
	}
	return time.Time{}, false
}

// ParseBytes is a convenience wrapper for callers holding a byte slice
// straight out of a log line: it converts the slice to a string and calls
// Parse.
func ParseBytes(when []byte) (time.Time, bool) {
	return Parse(string(when))
}
