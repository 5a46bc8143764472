// Package parseerr defines the small, closed set of fatal error kinds the
// engine can raise. Anything else the parser encounters (a malformed SIP
// header, an unrecognized module tag, a short CDR row) is recovered from
// silently and never reaches this type — see each package's own handling.
package parseerr

import "fmt"

// Kind enumerates the fatal error conditions the engine distinguishes,
// mirroring the handful of cases the original viewer reports separately
// to the user rather than logging and swallowing.
type Kind int

const (
	// FileNotFound: the log file, or the optional CDR file, does not exist.
	FileNotFound Kind = iota
	// InvalidArgument: mutually exclusive or out-of-range options, e.g.
	// --tail-minutes combined with --from/--to.
	InvalidArgument
	// NoDataInRange: a from/to window resolved to no matching file offset.
	NoDataInRange
	// MemoryRefusal: the window to load would exceed the configured
	// fraction of system memory.
	MemoryRefusal
	// MalformedWindow: a to_when preceded a from_when, yielding a negative
	// byte span.
	MalformedWindow
)

func (k Kind) String() string {
	switch k {
	case FileNotFound:
		return "file not found"
	case InvalidArgument:
		return "invalid argument"
	case NoDataInRange:
		return "no data in range"
	case MemoryRefusal:
		return "memory refusal"
	case MalformedWindow:
		return "malformed window"
	default:
		return "unknown"
	}
}

// Error is the one exported error type fatal conditions are wrapped in;
// callers type-assert with errors.As to recover the Kind.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// New builds an *Error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
