package walker

import "github.com/corey/codegraph/internal/graph"

// Symbol is the intermediate shape the walker builds while descending the
// CST, before it is promoted to a graph.Node with a computed identity and
// qualified name. The walker never hashes an ID itself, it just gathers
// the fields.
type Symbol struct {
	Kind        graph.Kind
	Name        string
	StartLine   int
	EndLine     int
	StartColumn int
	EndColumn   int
	Visibility  graph.Visibility
	IsExported  *bool
	IsAsync     *bool
	IsStatic    *bool
	IsAbstract  *bool
	Signature   string
	Docstring   string
	Decorators  []string
}
