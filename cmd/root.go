// Package cmd implements the command-line interface for astgraph.
// It uses the Cobra library to handle commands, flags, and execution.
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// Version information (passed from main).
var (
	version string
	commit  string
	date    string
)

// Flag variables for command-line options, bound in init() below.
var (
	cdrFile      string // --cdr: path to the accompanying CDR CSV
	configFile   string // --config: path to an astgraph.yaml settings file
	fromWhen     string // --from: window start timestamp
	toWhen       string // --to: window end timestamp
	tailMinutes  int    // --tail-minutes: analyze only the last N minutes
	useMemoryPct int    // --use-memory-pct: memory ceiling, percent of system RAM
	encodingFlag string // --encoding: byte encoding used to decode display text

	refFlag      string // --ref: entity reference to traverse and print
	isolateFlag  string // --isolate: "kind:value" narrowing --ref's result to one group
	maxDepthFlag int    // --max-depth: traversal depth cutoff
)

// rootCmd is the main command for the astgraph CLI.
var rootCmd = &cobra.Command{
	Use:   "astgraph <log-file>",
	Short: "Telephony log ingestion and call-graph reconstruction",
	Long: `astgraph ingests an Asterisk verbose log (optionally paired with a CDR
CSV) and reconstructs a linked graph of call-flow entities: SIP dialogs,
channel lifecycles, dial/queue applications, and per-thread contexts.

Give it a log file as its argument. Use --cdr to pair it with a CDR CSV,
and --ref to traverse and print the entities connected to a phone
number, channel, queue, or call-id.`,
	Args: cobra.ExactArgs(1),
	Run:  executeIngest,
}

// Execute runs the root command. Called by main.go to start the CLI.
func Execute(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cdrFile, "cdr", "",
		"Path to the CDR CSV accompanying the log file")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"Path to an astgraph.yaml settings file (flags override its values)")

	rootCmd.PersistentFlags().StringVar(&fromWhen, "from", "",
		"Window start timestamp (e.g. \"2024-01-02 15:04:05\")")
	rootCmd.PersistentFlags().StringVar(&toWhen, "to", "",
		"Window end timestamp")
	rootCmd.PersistentFlags().IntVar(&tailMinutes, "tail-minutes", 0,
		"Analyze only the last N minutes of the log (cannot be combined with --from/--to)")
	rootCmd.PersistentFlags().IntVar(&useMemoryPct, "use-memory-pct", 0,
		"Refuse to load a window larger than this percent of system memory (default 5, or the config file's value)")
	rootCmd.PersistentFlags().StringVar(&encodingFlag, "encoding", "",
		"Byte encoding used to decode log text for display (utf-8, latin1, windows-1252, utf-16le, utf-16be; default utf-8, or the config file's value)")

	rootCmd.PersistentFlags().StringVar(&refFlag, "ref", "",
		"Entity reference (phone, channel, queue, or call-id) to traverse and print")
	rootCmd.PersistentFlags().StringVar(&isolateFlag, "isolate", "",
		"Narrow --ref's result to one group: \"call_id:<id>\", \"sip_ref:<ref>\", \"chan:<name>\", or \"acall_id:<id>\"")
	rootCmd.PersistentFlags().IntVar(&maxDepthFlag, "max-depth", 10,
		"Traversal depth cutoff")
}
