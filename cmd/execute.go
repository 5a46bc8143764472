// Package cmd implements the command-line interface for astgraph.
package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/mbonnet/astgraph/internal/callgraph"
	"github.com/mbonnet/astgraph/internal/config"
	"github.com/mbonnet/astgraph/pkg/callgraphapi"
	"github.com/spf13/cobra"
)

// executeIngest is the main execution function for the root command: it
// loads config (file then flag overrides), runs the ingestion pipeline,
// prints a processing summary, and — if --ref was given — traverses and
// prints the resulting groups.
func executeIngest(cmd *cobra.Command, args []string) {
	startTime := time.Now()

	fileCfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("[ERROR] Failed to load config %s: %v", configFile, err)
	}

	cfg := fileCfg.Merge(config.Config{
		LogFile:      args[0],
		CDRFile:      cdrFile,
		FromWhen:     fromWhen,
		ToWhen:       toWhen,
		TailMinutes:  tailMinutes,
		UseMemoryPct: useMemoryPct,
		Encoding:     encodingFlag,
	})

	progress := func(module string, lineNo int, bytePos, totalBytes int64) {
		log.Printf("[INFO] %s: line %d (%d/%d bytes)", module, lineNo, bytePos, totalBytes)
	}

	session, err := callgraphapi.Ingest(cfg, progress)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	duration := time.Since(startTime)
	PrintProcessingSummary(session, duration)

	if refFlag != "" {
		isolate, err := parseIsolate(isolateFlag)
		if err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
		groups, _ := session.Traverse(refFlag, isolate, maxDepthFlag)
		printGroups(session, groups)
	}
}

// PrintProcessingSummary displays a summary line showing processing
// statistics, the same shape the teacher's text report opens with.
func PrintProcessingSummary(session *callgraphapi.Session, duration time.Duration) {
	fmt.Printf("astgraph – %d lines processed in %.2f s (window %s to %s)\n",
		session.Store.TotalLines, duration.Seconds(), session.FromWhen, session.ToWhen)
}

// printGroups renders traversal groups as plain text: each group's
// overview entries (dialogs, channels, AstCalls) followed by its raw
// lines in line-number order, decoded for display.
func printGroups(session *callgraphapi.Session, groups []*callgraph.Group) {
	for i, g := range groups {
		fmt.Printf("--- group %d ---\n", i+1)
		for _, entry := range g.Overview {
			fmt.Printf("  [%s] line %d\n", entry.Kind, entry.LineNo)
		}
		lineNos := make([]int, 0, len(g.Lines))
		for lineNo := range g.Lines {
			lineNos = append(lineNos, lineNo)
		}
		sortInts(lineNos)
		for _, lineNo := range lineNos {
			gl := g.Lines[lineNo]
			if raw, ok := gl.Line.([]byte); ok {
				fmt.Printf("%6d %s\n", lineNo, session.Decode(raw))
			}
		}
	}
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
