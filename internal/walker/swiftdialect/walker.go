// Package swiftdialect implements a Swift dialect walker. Swift overloads
// class_declaration across class/struct/actor/extension/enum, and a
// handful of declarations (subscripts, typealiases, init/deinit,
// protocols, property wrappers) need bespoke handling the generic policy
// table cannot express.
package swiftdialect

import (
	"strings"

	"github.com/corey/codegraph/internal/graph"
	"github.com/corey/codegraph/internal/sourceparse"
	"github.com/corey/codegraph/internal/walker"
)

// NewHooks builds the walker.Hooks that route Swift's bespoke node types
// through this package instead of the generic dispatcher.
func NewHooks() *walker.Hooks {
	return &walker.Hooks{InterceptNode: intercept}
}

func intercept(w *walker.Walker, n *sourceparse.Node) bool {
	switch n.Kind() {
	case "class_declaration":
		handleClassDeclaration(w, n)
		return true
	case "property_declaration", "protocol_property_declaration":
		handlePropertyDeclaration(w, n)
		return true
	case "subscript_declaration":
		handleSubscriptDeclaration(w, n)
		return true
	case "typealias_declaration", "associatedtype_declaration":
		handleTypeAlias(w, n)
		return true
	case "init_declaration":
		handleInitDeclaration(w, n)
		return true
	case "deinit_declaration":
		handleDeinitDeclaration(w, n)
		return true
	case "protocol_declaration":
		handleProtocolDeclaration(w, n)
		return true
	case "enum_entry":
		handleEnumEntry(w, n)
		return true
	default:
		return false
	}
}

// classDeclKeyword scans direct children for the token distinguishing
// Swift's overloaded class_declaration: class/struct/actor/extension/enum.
func classDeclKeyword(n *sourceparse.Node) string {
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Text() {
		case "class", "struct", "actor", "extension", "enum":
			return c.Text()
		}
	}
	return "class"
}

func handleClassDeclaration(w *walker.Walker, n *sourceparse.Node) {
	keyword := classDeclKeyword(n)
	kindTag := graph.KindClass
	if keyword == "enum" {
		kindTag = graph.KindEnum
	} else if keyword == "struct" {
		kindTag = graph.KindStruct
	}

	var name string
	if keyword == "extension" {
		name = extensionName(n)
	} else if field := n.ChildByFieldName("name"); field != nil {
		name = field.Text()
	} else if id := findChildByKind(n, "type_identifier"); id != nil {
		name = id.Text()
	}
	if name == "" {
		w.WalkChildren(n)
		return
	}

	sym := walker.Symbol{
		Kind:        kindTag,
		Name:        name,
		StartLine:   n.StartPoint().Row + 1,
		EndLine:     n.EndPoint().Row + 1,
		StartColumn: n.StartPoint().Column,
		EndColumn:   n.EndPoint().Column,
		Visibility:  swiftVisibility(n),
	}
	id := w.EmitNode(sym)
	extractInheritanceSpecifiers(w, n, id)

	pop := w.PushScope(id, name)
	defer pop()
	if body := findChildByKind(n, "class_body"); body != nil {
		w.WalkChildren(body)
	}
}

// extensionName builds "Type where Constraints": an extension node
// carries the extended type's name, and appends a type_constraints
// suffix when a where clause is present.
func extensionName(n *sourceparse.Node) string {
	typeNode := n.ChildByFieldName("name")
	if typeNode == nil {
		typeNode = findChildByKind(n, "user_type")
	}
	if typeNode == nil {
		typeNode = findChildByKind(n, "type_identifier")
	}
	if typeNode == nil {
		return ""
	}
	name := typeNode.Text()
	if where := findChildByKind(n, "type_constraints"); where != nil {
		name = name + " " + where.Text()
	}
	return name
}

func handlePropertyDeclaration(w *walker.Walker, n *sourceparse.Node) {
	pattern := n.ChildByFieldName("pattern")
	if pattern == nil {
		pattern = findChildByKind(n, "pattern")
	}
	var name string
	if pattern != nil {
		if id := findChildByKind(pattern, "simple_identifier"); id != nil {
			name = id.Text()
		}
	}
	if name == "" {
		w.WalkChildren(n)
		return
	}

	kindTag := graph.KindProperty
	isTopLevel := len(w.ScopeNames()) == 0 && n.Kind() != "protocol_property_declaration"
	if isTopLevel && hasDirectToken(n, "let") {
		kindTag = graph.KindConstant
	}

	sym := walker.Symbol{
		Kind:        kindTag,
		Name:        name,
		StartLine:   n.StartPoint().Row + 1,
		EndLine:     n.EndPoint().Row + 1,
		StartColumn: n.StartPoint().Column,
		EndColumn:   n.EndPoint().Column,
		Visibility:  swiftVisibility(n),
		Decorators:  propertyWrapperAttributes(n),
	}
	w.EmitNode(sym)
}

// propertyWrapperAttributes collects preceding attribute children (such
// as @State) as the decorator list.
func propertyWrapperAttributes(n *sourceparse.Node) []string {
	var out []string
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c != nil && c.Kind() == "attribute" {
			out = append(out, c.Text())
		}
	}
	return out
}

func handleSubscriptDeclaration(w *walker.Walker, n *sourceparse.Node) {
	sig := subscriptSignature(n)
	isStatic := hasDirectToken(n, "static") || hasDirectToken(n, "class")
	w.EmitNode(walker.Symbol{
		Kind:        graph.KindMethod,
		Name:        "subscript",
		StartLine:   n.StartPoint().Row + 1,
		EndLine:     n.EndPoint().Row + 1,
		StartColumn: n.StartPoint().Column,
		EndColumn:   n.EndPoint().Column,
		Visibility:  swiftVisibility(n),
		Signature:   sig,
		IsStatic:    &isStatic,
	})
}

func subscriptSignature(n *sourceparse.Node) string {
	var parts []string
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if c.Kind() == "parameter" || c.Kind() == "user_type" {
			parts = append(parts, c.Text())
		}
	}
	return strings.Join(parts, " -> ")
}

func handleTypeAlias(w *walker.Walker, n *sourceparse.Node) {
	id := findChildByKind(n, "type_identifier")
	if id == nil {
		w.WalkChildren(n)
		return
	}
	w.EmitNode(walker.Symbol{
		Kind:        graph.KindTypeAlias,
		Name:        id.Text(),
		StartLine:   n.StartPoint().Row + 1,
		EndLine:     n.EndPoint().Row + 1,
		StartColumn: n.StartPoint().Column,
		EndColumn:   n.EndPoint().Column,
	})
}

func handleInitDeclaration(w *walker.Walker, n *sourceparse.Node) {
	emitSimpleMethod(w, n, "init")
}

func handleDeinitDeclaration(w *walker.Walker, n *sourceparse.Node) {
	emitSimpleMethod(w, n, "deinit")
}

func emitSimpleMethod(w *walker.Walker, n *sourceparse.Node, name string) {
	id := w.EmitNode(walker.Symbol{
		Kind:        graph.KindMethod,
		Name:        name,
		StartLine:   n.StartPoint().Row + 1,
		EndLine:     n.EndPoint().Row + 1,
		StartColumn: n.StartPoint().Column,
		EndColumn:   n.EndPoint().Column,
		Visibility:  swiftVisibility(n),
	})
	pop := w.PushScope(id, name)
	defer pop()
	if body := findChildByKind(n, "function_body"); body != nil {
		w.WalkChildren(body)
	}
}

func handleProtocolDeclaration(w *walker.Walker, n *sourceparse.Node) {
	name := ""
	if field := n.ChildByFieldName("name"); field != nil {
		name = field.Text()
	} else if id := findChildByKind(n, "type_identifier"); id != nil {
		name = id.Text()
	}
	if name == "" {
		w.WalkChildren(n)
		return
	}

	id := w.EmitNode(walker.Symbol{
		Kind:        graph.KindInterface,
		Name:        name,
		StartLine:   n.StartPoint().Row + 1,
		EndLine:     n.EndPoint().Row + 1,
		StartColumn: n.StartPoint().Column,
		EndColumn:   n.EndPoint().Column,
		Visibility:  swiftVisibility(n),
	})
	extractInheritanceSpecifiers(w, n, id)

	pop := w.PushScope(id, name)
	defer pop()
	if body := findChildByKind(n, "protocol_body"); body != nil {
		for _, c := range body.NamedChildren() {
			switch c.Kind() {
			case "associatedtype_declaration":
				handleTypeAlias(w, c)
			case "protocol_property_declaration":
				handlePropertyDeclaration(w, c)
			case "protocol_function_declaration":
				handleProtocolFunction(w, c)
			default:
				w.WalkChildren(c)
			}
		}
	}
}

func handleProtocolFunction(w *walker.Walker, n *sourceparse.Node) {
	name, ok := "", false
	if field := n.ChildByFieldName("name"); field != nil {
		name, ok = field.Text(), true
	} else if id := findChildByKind(n, "simple_identifier"); id != nil {
		name, ok = id.Text(), true
	}
	if !ok {
		w.WalkChildren(n)
		return
	}
	w.EmitNode(walker.Symbol{
		Kind:        graph.KindMethod,
		Name:        name,
		StartLine:   n.StartPoint().Row + 1,
		EndLine:     n.EndPoint().Row + 1,
		StartColumn: n.StartPoint().Column,
		EndColumn:   n.EndPoint().Column,
		Visibility:  swiftVisibility(n),
	})
}

func handleEnumEntry(w *walker.Walker, n *sourceparse.Node) {
	id := findChildByKind(n, "simple_identifier")
	if id == nil {
		w.WalkChildren(n)
		return
	}
	w.EmitNode(walker.Symbol{
		Kind:        graph.KindEnumMember,
		Name:        id.Text(),
		StartLine:   n.StartPoint().Row + 1,
		EndLine:     n.EndPoint().Row + 1,
		StartColumn: n.StartPoint().Column,
		EndColumn:   n.EndPoint().Column,
	})
}

// extractInheritanceSpecifiers applies Swift's inheritance rule: the
// first inheritance_specifier is `extends` for class kinds, `implements`
// otherwise; the rest are always `implements`.
func extractInheritanceSpecifiers(w *walker.Walker, n *sourceparse.Node, fromID string) {
	specs := findChildrenByKind(n, "inheritance_specifier")
	for i, spec := range specs {
		t := findChildByKind(spec, "user_type")
		name := spec.Text()
		if t != nil {
			name = t.Text()
		}
		kind := graph.RefImplements
		if i == 0 && isClassKind(n) {
			kind = graph.RefExtends
		}
		w.EmitReference(fromID, kind, name, spec.StartPoint())
	}
}

func isClassKind(n *sourceparse.Node) bool {
	return n.Kind() == "class_declaration" && classDeclKeyword(n) == "class"
}

func hasDirectToken(n *sourceparse.Node, token string) bool {
	for i := 0; i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil && c.Text() == token {
			return true
		}
	}
	if mods := findChildByKind(n, "modifiers"); mods != nil {
		for i := 0; i < mods.ChildCount(); i++ {
			if c := mods.Child(i); c != nil && c.Text() == token {
				return true
			}
		}
	}
	return false
}

func swiftVisibility(n *sourceparse.Node) graph.Visibility {
	switch {
	case hasDirectToken(n, "public"), hasDirectToken(n, "open"):
		return graph.VisibilityPublic
	case hasDirectToken(n, "private"), hasDirectToken(n, "fileprivate"):
		return graph.VisibilityPrivate
	case hasDirectToken(n, "protected"):
		return graph.VisibilityProtected
	}
	return graph.VisibilityInternal
}

func findChildByKind(n *sourceparse.Node, kind string) *sourceparse.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}

func findChildrenByKind(n *sourceparse.Node, kind string) []*sourceparse.Node {
	if n == nil {
		return nil
	}
	var out []*sourceparse.Node
	for i := 0; i < n.ChildCount(); i++ {
		if c := n.Child(i); c != nil && c.Kind() == kind {
			out = append(out, c)
		}
	}
	return out
}
