// Package driver implements the single synchronous pass over the log
// bytes: for every line it resolves the current timestamp and AstCall,
// feeds an in-flight SIP message to the assembler if one is open, or
// dispatches the line to whichever per-module sub-parser its source tag
// names. It never spawns a goroutine — entity state machines depend on
// observing lines in strictly ascending order.
package driver

// ProgressFunc is invoked periodically while the driver runs: every
// 10,000 lines during the log pass, and once per CDR row during
// enrichment. Implementations must be cheap and must not re-enter the
// driver or store they were invoked from.
type ProgressFunc func(module string, lineNo int, bytePos, totalBytes int64)
