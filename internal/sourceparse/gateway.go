// Package sourceparse wraps github.com/tree-sitter/go-tree-sitter: one
// warm parser per language, and a CST node wrapper (node.go) the walker
// packages operate on instead of the raw library types.
package sourceparse

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/codegraph/internal/registry"
)

// Tree is a parsed CST plus the source bytes it was parsed from. Call
// Close when done; the underlying tree_sitter.Tree owns native memory.
type Tree struct {
	raw    *tree_sitter.Tree
	source []byte
}

// Root returns the CST root node.
func (t *Tree) Root() *Node {
	root := t.raw.RootNode()
	return wrap(root, t.source)
}

// Close releases the native tree.
func (t *Tree) Close() {
	if t.raw != nil {
		t.raw.Close()
	}
}

// Gateway holds one warm tree_sitter.Parser per language. It is not safe
// for concurrent use — callers should keep one Gateway per worker, not a
// shared instance guarded by a mutex, to keep per-file extraction
// single-threaded and lock-free.
type Gateway struct {
	grammars map[registry.Language]*tree_sitter.Language
	parsers  map[registry.Language]*tree_sitter.Parser
}

// NewGateway builds a Gateway with every builtin grammar registered but no
// parsers constructed yet — parsers are created lazily per language on
// first use, and kept warm thereafter.
func NewGateway() *Gateway {
	return &Gateway{
		grammars: builtinGrammars(),
		parsers:  make(map[registry.Language]*tree_sitter.Parser),
	}
}

// Close releases every parser this gateway constructed.
func (g *Gateway) Close() {
	for _, p := range g.parsers {
		p.Close()
	}
}

// HasGrammar reports whether a language has a concrete grammar wired in.
func (g *Gateway) HasGrammar(lang registry.Language) bool {
	_, ok := g.grammars[lang]
	return ok
}

func (g *Gateway) parserFor(lang registry.Language) (*tree_sitter.Parser, error) {
	if p, ok := g.parsers[lang]; ok {
		return p, nil
	}
	grammar, ok := g.grammars[lang]
	if !ok {
		return nil, fmt.Errorf("no grammar registered for language %q", lang)
	}
	p := tree_sitter.NewParser()
	if err := p.SetLanguage(grammar); err != nil {
		return nil, fmt.Errorf("set language %q: %w", lang, err)
	}
	g.parsers[lang] = p
	return p, nil
}

// ParseFile parses UTF-8 source into a CST. It never panics across this
// boundary: a grammar failure or a nil tree becomes a returned error, and
// the caller (internal/extract) turns that into a parse-failure result
// rather than crashing the pipeline.
func (g *Gateway) ParseFile(lang registry.Language, source []byte) (tree *Tree, err error) {
	defer func() {
		if r := recover(); r != nil {
			tree = nil
			err = fmt.Errorf("parser panic for language %q: %v", lang, r)
		}
	}()

	parser, perr := g.parserFor(lang)
	if perr != nil {
		return nil, perr
	}
	raw := parser.Parse(source, nil)
	if raw == nil {
		return nil, fmt.Errorf("parser returned no tree for language %q", lang)
	}
	if raw.RootNode() == nil {
		raw.Close()
		return nil, fmt.Errorf("parser produced an empty tree for language %q", lang)
	}
	return &Tree{raw: raw, source: source}, nil
}
