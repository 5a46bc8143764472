// Package callgraphapi is the stable entry point an external viewer
// imports: it wires the windowed reader, the single-pass driver, and CDR
// enrichment into one Ingest call, then exposes the resulting Session's
// search, lookup, and traversal operations plus lazy text decoding.
package callgraphapi

import (
	"github.com/mbonnet/astgraph/internal/callgraph"
	"github.com/mbonnet/astgraph/internal/cdr"
	"github.com/mbonnet/astgraph/internal/config"
	"github.com/mbonnet/astgraph/internal/driver"
	"github.com/mbonnet/astgraph/internal/graph"
	"github.com/mbonnet/astgraph/internal/logio"
	"github.com/mbonnet/astgraph/internal/parseerr"
	"github.com/mbonnet/astgraph/internal/search"
)

// Session holds a fully ingested log (and its optional CDR enrichment)
// ready for queries.
type Session struct {
	Store    *callgraph.Store
	Config   config.Config
	FromWhen string
	ToWhen   string

	decoder *Decoder
}

// Ingest reads cfg.LogFile's windowed span, runs the single parsing pass
// over it, and — if cfg.CDRFile is set — enriches the result with CDR
// data, returning a Session ready for Search/Find/Traverse.
func Ingest(cfg config.Config, progress driver.ProgressFunc) (*Session, error) {
	if cfg.TailMinutes > 0 && (cfg.FromWhen != "" || cfg.ToWhen != "") {
		return nil, parseerr.New(parseerr.InvalidArgument,
			"--tail-minutes cannot be combined with --from/--to")
	}

	if cfg.Encoding == "" {
		cfg.Encoding = "utf-8"
	}

	window, err := logio.Read(logio.Options{
		Path:         cfg.LogFile,
		FromWhen:     cfg.FromWhen,
		ToWhen:       cfg.ToWhen,
		TailMinutes:  cfg.TailMinutes,
		UseMemoryPct: cfg.UseMemoryPct,
	})
	if err != nil {
		return nil, err
	}

	result, err := driver.Run(window.Data, progress)
	if err != nil {
		return nil, err
	}

	if cfg.CDRFile != "" {
		if err := cdr.Enrich(result.Store, cfg.CDRFile, result.FirstWhen, result.LastWhen, progress); err != nil {
			return nil, err
		}
	}

	return &Session{
		Store:    result.Store,
		Config:   cfg,
		FromWhen: window.FromWhen,
		ToWhen:   window.ToWhen,
		decoder:  NewDecoder(cfg.Encoding),
	}, nil
}

// PhoneSet is every phone/extension/queue-name identifier known to this
// session.
func (s *Session) PhoneSet() []string {
	return search.PhoneSet(s.Store)
}

// Search runs the plain-text query a viewer's search box issues.
func (s *Session) Search(number, chanName, callID string) []string {
	return search.Search(s.Store, number, chanName, callID)
}

// Find looks up a single entity by kind and id.
func (s *Session) Find(kind search.FindKind, id string) (any, bool) {
	return search.Find(s.Store, kind, id)
}

// Traverse walks the call graph outward from ref, the operation a
// viewer runs whenever the user selects an entity to inspect.
func (s *Session) Traverse(ref string, isolate graph.Isolation, maxDepth int) ([]*callgraph.Group, map[int]callgraph.GroupLine) {
	return graph.Traverse(s.Store, ref, isolate, maxDepth)
}

// Decode returns line as displayable text using the session's
// configured encoding.
func (s *Session) Decode(line []byte) string {
	return s.decoder.Decode(line)
}
