// Package cmd implements the command-line interface for astgraph.
package cmd

import (
	"fmt"

	"github.com/mbonnet/astgraph/internal/graph"
)

// parseIsolate parses the "--isolate kind:value" flag into a
// graph.Isolation. An empty string means "no isolation": every group is
// returned.
func parseIsolate(raw string) (graph.Isolation, error) {
	if raw == "" {
		return graph.Isolation{}, nil
	}
	idx := -1
	for i, c := range raw {
		if c == ':' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return graph.Isolation{}, fmt.Errorf("--isolate must be \"kind:value\", got %q", raw)
	}
	kind, value := raw[:idx], raw[idx+1:]
	switch kind {
	case "call_id":
		return graph.Isolation{Kind: graph.IsolateCallID, Ref: value}, nil
	case "sip_ref":
		return graph.Isolation{Kind: graph.IsolateSipRef, Ref: value}, nil
	case "chan":
		return graph.Isolation{Kind: graph.IsolateChannel, Ref: value}, nil
	case "acall_id":
		return graph.Isolation{Kind: graph.IsolateACallID, Ref: value}, nil
	default:
		return graph.Isolation{}, fmt.Errorf("unknown --isolate kind %q", kind)
	}
}
