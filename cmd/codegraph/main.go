// codegraph builds a typed knowledge graph out of a source tree: parse
// every file with tree-sitter (or a pattern scan where no grammar exists),
// extract functions/classes/methods/calls/imports, and persist the result
// for incremental re-extraction.
package main

import (
	"fmt"
	"os"

	"github.com/corey/codegraph/cmd/codegraph/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
