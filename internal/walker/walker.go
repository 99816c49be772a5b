// Package walker implements a generic CST walker: a depth-first pass
// dispatched through a language's policy.Record, with an explicit scope
// stack and optional Hooks so the Kotlin and Swift dialect walkers can
// intercept the node types the policy table cannot describe.
package walker

import (
	"github.com/corey/codegraph/internal/graph"
	"github.com/corey/codegraph/internal/policy"
	"github.com/corey/codegraph/internal/sourceparse"
)

// Result is the pure output of one file's walk: everything the
// extraction orchestrator needs except durationMs, which it times itself.
type Result struct {
	Nodes  []graph.Node
	Edges  []graph.Edge
	Refs   []graph.UnresolvedReference
	Errors []graph.ExtractionError
}

// Hooks lets a dialect walker intercept node kinds its policy record
// cannot express. InterceptNode runs before generic dispatch for every
// node; returning handled=true means the hook took full responsibility
// for this node, including recursing into its children.
type Hooks struct {
	InterceptNode func(w *Walker, n *sourceparse.Node) (handled bool)
}

type scopeFrame struct {
	id   string
	name string
}

// Walker carries the per-file state of one walk: nothing here is shared
// across files, so a Walker is never safe for concurrent use — callers
// construct one per file.
type Walker struct {
	filePath string
	language string
	policy   *policy.Record
	hooks    *Hooks
	updatedAt int64

	scopes     []scopeFrame
	fileNodeID string
	result     Result
}

// New builds a Walker for one file. updatedAt is the extraction wall-clock
// time in milliseconds, supplied by the caller rather than read from
// time.Now() here — this keeps the walk itself a pure function of its CST
// and policy, so two walks over identical input always produce identical
// output.
func New(filePath, language string, rec *policy.Record, hooks *Hooks, updatedAt int64) *Walker {
	return &Walker{filePath: filePath, language: language, policy: rec, hooks: hooks, updatedAt: updatedAt}
}

// Walk runs the depth-first pass from the CST root and returns the
// accumulated nodes, edges, references, and errors.
func (w *Walker) Walk(root *sourceparse.Node) Result {
	fileID := graph.FileID(w.filePath)
	w.fileNodeID = fileID
	endLine := root.EndPoint().Row + 1
	w.result.Nodes = append(w.result.Nodes, graph.Node{
		ID:            fileID,
		Kind:          graph.KindFile,
		Name:          w.filePath,
		QualifiedName: w.filePath,
		FilePath:      w.filePath,
		Language:      w.language,
		StartLine:     1,
		EndLine:       endLine,
		UpdatedAt:     w.updatedAt,
	})
	w.WalkChildren(root)
	return w.result
}

// WalkChildren dispatches every named child of n. Dialect walkers call this
// from their intercept hooks to continue the generic walk into a node's
// body after handling the node itself.
func (w *Walker) WalkChildren(n *sourceparse.Node) {
	if n == nil {
		return
	}
	for _, c := range n.NamedChildren() {
		w.walk(c)
	}
}

func (w *Walker) walk(n *sourceparse.Node) {
	if n == nil {
		return
	}
	if w.hooks != nil && w.hooks.InterceptNode != nil {
		if w.hooks.InterceptNode(w, n) {
			return
		}
	}

	kind := n.Kind()
	rec := w.policy

	switch {
	case rec.FunctionTypes.Has(kind):
		w.dispatchFunctionLike(n, kind)
	case rec.ClassTypes.Has(kind):
		w.dispatchContainer(n, graph.KindClass, true)
	case rec.MethodTypes.Has(kind):
		w.emitFunctionLike(n, graph.KindMethod)
	case rec.InterfaceTypes.Has(kind):
		w.dispatchContainer(n, interfaceKind(rec), true)
	case rec.StructTypes.Has(kind):
		w.dispatchContainer(n, graph.KindStruct, false)
	case rec.EnumTypes.Has(kind):
		w.dispatchContainer(n, graph.KindEnum, false)
	case rec.ImportTypes.Has(kind):
		w.dispatchImport(n)
	case rec.CallTypes.Has(kind):
		w.dispatchCall(n)
	default:
		w.WalkChildren(n)
	}
}

// dispatchFunctionLike resolves the function-vs-method ambiguity: a node
// whose type is in FunctionTypes is a method when the scope stack is
// non-empty
// and the same CST type also appears in MethodTypes (Python's nested
// function_definition), otherwise it is a top-level function. Go's
// GoReceiverMethod never reaches here — its method_declaration type lives
// only in MethodTypes, so it always routes through the MethodTypes case
// above regardless of scope depth.
func (w *Walker) dispatchFunctionLike(n *sourceparse.Node, kind string) {
	if len(w.scopes) > 0 && w.policy.MethodTypes.Has(kind) {
		w.emitFunctionLike(n, graph.KindMethod)
		return
	}
	w.emitFunctionLike(n, graph.KindFunction)
}

func (w *Walker) emitFunctionLike(n *sourceparse.Node, kindTag graph.Kind) {
	rec := w.policy
	name, ok := extractName(n, rec.NameField)
	if !ok || name == "" {
		w.WalkChildren(n)
		return
	}

	sym := w.baseSymbol(n, kindTag, name)
	if rec.Signature != nil {
		if sig, ok := rec.Signature(n); ok {
			sym.Signature = sig
		}
	}
	if rec.Async != nil {
		v := rec.Async(n)
		sym.IsAsync = &v
	}
	if rec.Static != nil {
		v := rec.Static(n)
		sym.IsStatic = &v
	}
	if rec.Exported != nil {
		v := rec.Exported(n)
		sym.IsExported = &v
	}

	id := w.EmitNode(sym)
	pop := w.PushScope(id, name)
	defer pop()

	body := n.ChildByFieldName(rec.BodyField)
	if body == nil {
		// Grammars without a body field (Kotlin) expose it as a
		// function_body child instead.
		body = findNamedChildByKind(n, "function_body")
	}
	if body != nil {
		w.WalkChildren(body)
	}
}

func (w *Walker) dispatchContainer(n *sourceparse.Node, kindTag graph.Kind, withInheritance bool) {
	rec := w.policy
	name, ok := extractName(n, rec.NameField)
	if !ok || name == "" {
		w.WalkChildren(n)
		return
	}

	sym := w.baseSymbol(n, kindTag, name)
	id := w.EmitNode(sym)
	if withInheritance {
		w.ExtractInheritance(n, id)
	}

	pop := w.PushScope(id, name)
	defer pop()

	if body := n.ChildByFieldName(rec.BodyField); body != nil {
		w.WalkChildren(body)
	} else {
		w.WalkChildren(n)
	}
}

func interfaceKind(rec *policy.Record) graph.Kind {
	if rec.InterfaceKind != "" {
		return rec.InterfaceKind
	}
	return graph.KindInterface
}

func (w *Walker) dispatchImport(n *sourceparse.Node) {
	name, ok := importModuleName(n)
	if !ok {
		return
	}
	w.EmitReference(w.CurrentScopeID(), graph.RefImports, name, n.StartPoint())
}

func (w *Walker) dispatchCall(n *sourceparse.Node) {
	if name, ok := callSiteName(n); ok {
		w.EmitReference(w.CurrentScopeID(), graph.RefCalls, name, n.StartPoint())
	}
	w.WalkChildren(n)
}

func (w *Walker) baseSymbol(n *sourceparse.Node, kindTag graph.Kind, name string) Symbol {
	start, end := n.StartPoint(), n.EndPoint()
	vis, ok := w.ExtractVisibility(n)
	if !ok {
		vis = w.policy.DefaultVisibility
	}
	return Symbol{
		Kind:        kindTag,
		Name:        name,
		StartLine:   start.Row + 1,
		EndLine:     end.Row + 1,
		StartColumn: start.Column,
		EndColumn:   end.Column,
		Visibility:  vis,
		Docstring:   w.ExtractDocstring(n),
	}
}

// ExtractVisibility runs the policy's Visibility extractor if present.
func (w *Walker) ExtractVisibility(n *sourceparse.Node) (graph.Visibility, bool) {
	if w.policy.Visibility == nil {
		return "", false
	}
	return w.policy.Visibility(n)
}

// ExtractDocstring walks preceding named comment siblings backwards until
// a non-comment sibling, reverses them to original order, strips comment
// markers, and joins with newlines.
func (w *Walker) ExtractDocstring(n *sourceparse.Node) string {
	var comments []string
	sib := n.PrevNamedSibling()
	for sib != nil && commentKinds[sib.Kind()] {
		comments = append(comments, sib.Text())
		sib = sib.PrevNamedSibling()
	}
	if len(comments) == 0 {
		return ""
	}
	for i, j := 0, len(comments)-1; i < j; i, j = i+1, j-1 {
		comments[i], comments[j] = comments[j], comments[i]
	}
	joined := make([]string, 0, len(comments))
	for _, c := range comments {
		joined = append(joined, stripCommentMarkers(c))
	}
	return joinNonEmpty(joined, "\n")
}

func joinNonEmpty(lines []string, sep string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += sep
		}
		out += l
	}
	return out
}

// ExtractInheritance extracts inheritance references for class-like
// nodes: an extends_clause/class_heritage/superclass child
// contributes one `extends` reference; an implements_clause/
// class_interface_clause child contributes one `implements` reference per
// named child.
func (w *Walker) ExtractInheritance(n *sourceparse.Node, fromID string) {
	for _, kind := range []string{"extends_clause", "class_heritage", "superclass"} {
		if h := findNamedChildByKind(n, kind); h != nil {
			name := h.Text()
			if h.NamedChildCount() > 0 {
				name = h.NamedChild(0).Text()
			}
			w.EmitReference(fromID, graph.RefExtends, name, h.StartPoint())
		}
	}
	for _, kind := range []string{"implements_clause", "class_interface_clause"} {
		if h := findNamedChildByKind(n, kind); h != nil {
			for _, c := range h.NamedChildren() {
				w.EmitReference(fromID, graph.RefImplements, c.Text(), h.StartPoint())
			}
		}
	}
}

// EmitNode promotes a Symbol to a graph.Node, appends it to the result,
// and emits a containment edge from the current scope (or the file node
// if the stack is empty).
func (w *Walker) EmitNode(sym Symbol) string {
	id := graph.Identity(w.filePath, sym.Kind, sym.Name, sym.StartLine)
	scope := append([]string{w.filePath}, w.ScopeNames()...)
	node := graph.Node{
		ID:            id,
		Kind:          sym.Kind,
		Name:          sym.Name,
		QualifiedName: graph.QualifiedName(scope, sym.Name),
		FilePath:      w.filePath,
		Language:      w.language,
		StartLine:     sym.StartLine,
		EndLine:       sym.EndLine,
		StartColumn:   sym.StartColumn,
		EndColumn:     sym.EndColumn,
		UpdatedAt:     w.updatedAt,
		Visibility:    sym.Visibility,
		IsExported:    sym.IsExported,
		IsAsync:       sym.IsAsync,
		IsStatic:      sym.IsStatic,
		IsAbstract:    sym.IsAbstract,
		Signature:     sym.Signature,
		Docstring:     sym.Docstring,
		Decorators:    sym.Decorators,
	}
	w.result.Nodes = append(w.result.Nodes, node)
	w.result.Edges = append(w.result.Edges, graph.Edge{
		SourceID: w.CurrentScopeID(),
		TargetID: id,
		Kind:     graph.EdgeContains,
	})
	return id
}

// EmitReference appends an unresolved reference from fromID.
func (w *Walker) EmitReference(fromID string, kind graph.ReferenceKind, name string, point sourceparse.Point) {
	w.result.Refs = append(w.result.Refs, graph.UnresolvedReference{
		FromNodeID: fromID,
		Name:       name,
		Kind:       kind,
		Line:       point.Row + 1,
		Column:     point.Column,
	})
}

// PushScope pushes a new scope frame and returns a pop closure. Dialect
// walkers use this to attribute nested nodes to a container they emitted
// themselves via EmitNode.
func (w *Walker) PushScope(id, name string) func() {
	w.scopes = append(w.scopes, scopeFrame{id: id, name: name})
	depth := len(w.scopes)
	return func() {
		w.scopes = w.scopes[:depth-1]
	}
}

// CurrentScopeID returns the innermost scope's node id, or the file node
// id if no scope is open.
func (w *Walker) CurrentScopeID() string {
	if len(w.scopes) == 0 {
		return w.fileNodeID
	}
	return w.scopes[len(w.scopes)-1].id
}

// ScopeNames returns the enclosing scope names, outer to inner, excluding
// the file itself (the file path is prefixed separately by EmitNode).
func (w *Walker) ScopeNames() []string {
	names := make([]string, 0, len(w.scopes))
	for _, f := range w.scopes {
		names = append(names, f.name)
	}
	return names
}

// Policy exposes the active policy record, for dialect walkers that want
// to reuse CallTypes or other shared fields instead of redeclaring them.
func (w *Walker) Policy() *policy.Record { return w.policy }

// FilePath returns the file path this walker was constructed for.
func (w *Walker) FilePath() string { return w.filePath }

// Language returns the language tag this walker was constructed for.
func (w *Walker) Language() string { return w.language }
