// Package sinkport defines the downstream sink contract: a batch of
// (filePath, contentHash, nodes, edges, unresolvedRefs) that must be
// applied atomically, replacing whatever batch previously existed for
// that file path. internal/adapters/bbolt implements it.
package sinkport

import (
	"context"

	"github.com/corey/codegraph/internal/graph"
)

// Batch is one file's extraction output, ready to replace any prior batch
// for the same FilePath.
type Batch struct {
	FilePath    string
	ContentHash string
	Nodes       []graph.Node
	Edges       []graph.Edge
	Refs        []graph.UnresolvedReference
}

// Sink is the storage contract extraction writes to. Implementations must
// make ReplaceBatch atomic per file: either the whole previous batch for
// FilePath is gone and the new one is visible, or (on error) nothing
// changed.
type Sink interface {
	// ReplaceBatch atomically replaces the stored batch for b.FilePath.
	ReplaceBatch(ctx context.Context, b Batch) error

	// ContentHash returns the previously stored content hash for a file
	// path, and whether any batch is stored for it at all. Callers use
	// this to skip re-extraction when the hash is unchanged.
	ContentHash(ctx context.Context, filePath string) (hash string, exists bool, err error)

	// DeleteFile removes any stored batch for filePath. Idempotent.
	DeleteFile(ctx context.Context, filePath string) error

	// Stats returns file, node and edge totals, node counts per kind, and
	// file counts per language across every stored batch, for the CLI
	// "stats" subcommand.
	Stats(ctx context.Context) (Stats, error)
}

// Stats is an aggregate snapshot of everything currently stored.
type Stats struct {
	FileCount   int
	NodeCount   int
	EdgeCount   int
	NodesByKind map[graph.Kind]int
	FilesByLang map[string]int
}
