// Package policy holds the per-language policy table that drives
// internal/walker's generic dispatch: which CST node types are functions,
// classes, methods, and so on, which fields carry a name/params/body/return
// type, and a handful of optional attribute extractors.
package policy

import (
	"github.com/corey/codegraph/internal/graph"
	"github.com/corey/codegraph/internal/sourceparse"
)

// TypeSet is a small lookup set of CST node-type strings.
type TypeSet map[string]bool

func typeSet(kinds ...string) TypeSet {
	s := make(TypeSet, len(kinds))
	for _, k := range kinds {
		s[k] = true
	}
	return s
}

// Has reports whether a CST node kind belongs to this set. A nil set never
// matches, so a language that has no struct concept simply omits the field.
func (s TypeSet) Has(kind string) bool {
	return s != nil && s[kind]
}

// SignatureExtractor builds the signature text for a node, given the
// language separator convention. Returns ok=false to suppress the field.
type SignatureExtractor func(n *sourceparse.Node) (string, bool)

// VisibilityExtractor inspects a node's modifiers and returns the access
// level, or ok=false to fall back to the record's DefaultVisibility.
type VisibilityExtractor func(n *sourceparse.Node) (graph.Visibility, bool)

// ExportedExtractor reports whether a declaration is exported: by name
// shape in Go, by an enclosing export statement in TS/JS.
type ExportedExtractor func(n *sourceparse.Node) bool

// AsyncExtractor reports whether a declaration is async/suspending.
type AsyncExtractor func(n *sourceparse.Node) bool

// StaticExtractor reports whether a declaration is static/class-scoped.
type StaticExtractor func(n *sourceparse.Node) bool

// Record is one language's entry in the policy table: the CST node-kind
// sets, field names, and optional extractors that drive the generic
// walker's dispatch for that language.
type Record struct {
	FunctionTypes  TypeSet
	ClassTypes     TypeSet
	MethodTypes    TypeSet
	InterfaceTypes TypeSet
	StructTypes    TypeSet
	EnumTypes      TypeSet
	ImportTypes    TypeSet
	CallTypes      TypeSet

	NameField   string
	BodyField   string
	ParamsField string
	ReturnField string

	// Separator records the language's join string between params text and
	// return text; each Signature closure passes the same string to
	// DefaultSignature. The walker does not read it: a record with no
	// Signature produces no signature.
	Separator string

	Signature  SignatureExtractor
	Visibility VisibilityExtractor
	Exported   ExportedExtractor
	Async      AsyncExtractor
	Static     StaticExtractor

	// DefaultVisibility is used when Visibility is nil or returns ok=false.
	// Zero value means "leave Visibility unset on the node".
	DefaultVisibility graph.Visibility

	// InterfaceKind overrides the node kind emitted for InterfaceTypes
	// matches. Rust's trait_item dispatches through the same bucket as an
	// interface but must emit graph.KindTrait, not graph.KindInterface.
	// Zero value defaults to graph.KindInterface.
	InterfaceKind graph.Kind

	// GoReceiverMethod marks Go's exceptional rule: a method-typed
	// declaration is always a method even at top scope (it carries a
	// receiver instead of being nested in a class).
	GoReceiverMethod bool
}

// DefaultSignature concatenates the params field's text with the return
// field's text (when present), joined by sep.
func DefaultSignature(n *sourceparse.Node, paramsField, returnField, sep string) (string, bool) {
	params := n.ChildByFieldName(paramsField)
	if params == nil {
		return "", false
	}
	sig := params.Text()
	if returnField != "" {
		if ret := n.ChildByFieldName(returnField); ret != nil {
			sig = sig + sep + ret.Text()
		}
	}
	return sig, true
}
