// Package main is the entry point for astgraph, a telephony log
// ingestion engine that reconstructs a linked call-flow graph from an
// Asterisk verbose log and its optional CDR CSV.
package main

import (
	"github.com/mbonnet/astgraph/cmd"
)

// version, commit, and date are set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
