package cmd

import (
	"github.com/corey/codegraph/internal/extract"
	"github.com/corey/codegraph/internal/sinkport"
)

// toBatch converts an extraction result into the shape the sink stores.
func toBatch(r extract.Result) sinkport.Batch {
	return sinkport.Batch{
		FilePath:    r.FilePath,
		ContentHash: r.ContentHash,
		Nodes:       r.Nodes,
		Edges:       r.Edges,
		Refs:        r.UnresolvedReferences,
	}
}
