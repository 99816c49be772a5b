// Package kotlindialect implements a Kotlin dialect walker: a set of
// node-type interceptors that replace generic dispatch for Kotlin's
// overloaded class_declaration and its handful of bespoke constructs.
// It embeds the generic walker via walker.Hooks rather than subclassing it.
package kotlindialect

import (
	"strings"

	"github.com/corey/codegraph/internal/graph"
	"github.com/corey/codegraph/internal/policy"
	"github.com/corey/codegraph/internal/registry"
	"github.com/corey/codegraph/internal/sourceparse"
	"github.com/corey/codegraph/internal/walker"
)

// NewHooks builds the walker.Hooks that route Kotlin's bespoke node types
// through this package instead of the generic dispatcher.
func NewHooks() *walker.Hooks {
	return &walker.Hooks{InterceptNode: intercept}
}

func intercept(w *walker.Walker, n *sourceparse.Node) bool {
	switch n.Kind() {
	case "class_declaration":
		handleClassDeclaration(w, n)
		return true
	case "object_declaration":
		handleObjectDeclaration(w, n)
		return true
	case "companion_object":
		handleCompanionObject(w, n)
		return true
	case "property_declaration":
		handlePropertyDeclaration(w, n)
		return true
	case "type_alias":
		handleTypeAlias(w, n)
		return true
	case "enum_entry":
		handleEnumEntry(w, n)
		return true
	default:
		return false
	}
}

func hasDirectOrModifierToken(n *sourceparse.Node, token string) bool {
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if c.Kind() == "modifiers" {
			for j := 0; j < c.ChildCount(); j++ {
				if mc := c.Child(j); mc != nil && mc.Text() == token {
					return true
				}
			}
		}
		if c.Text() == token {
			return true
		}
	}
	return false
}

// classifyClassDeclaration distinguishes class/interface/enum for Kotlin's
// single class_declaration node type by scanning for the "interface" or
// "enum" keyword tokens outside the modifiers child.
func classifyClassDeclaration(n *sourceparse.Node) graph.Kind {
	for i := 0; i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c == nil || c.Kind() == "modifiers" {
			continue
		}
		switch c.Text() {
		case "interface":
			return graph.KindInterface
		case "enum":
			return graph.KindEnum
		}
	}
	return graph.KindClass
}

func handleClassDeclaration(w *walker.Walker, n *sourceparse.Node) {
	kindTag := classifyClassDeclaration(n)
	name, ok := kotlinName(n)
	if !ok {
		w.WalkChildren(n)
		return
	}

	isAbstract := hasDirectOrModifierToken(n, "abstract")
	sym := walker.Symbol{
		Kind:        kindTag,
		Name:        name,
		StartLine:   n.StartPoint().Row + 1,
		EndLine:     n.EndPoint().Row + 1,
		StartColumn: n.StartPoint().Column,
		EndColumn:   n.EndPoint().Column,
		Visibility:  kotlinVisibility(n),
		IsAbstract:  &isAbstract,
	}
	id := w.EmitNode(sym)
	extractDelegationSpecifiers(w, n, id)

	pop := w.PushScope(id, name)
	defer pop()
	if body := findChildByKind(n, "class_body"); body != nil {
		w.WalkChildren(body)
	} else if body := findChildByKind(n, "enum_class_body"); body != nil {
		w.WalkChildren(body)
	}
}

func handleObjectDeclaration(w *walker.Walker, n *sourceparse.Node) {
	name, ok := kotlinName(n)
	if !ok {
		w.WalkChildren(n)
		return
	}
	sym := walker.Symbol{
		Kind:        graph.KindClass,
		Name:        name,
		StartLine:   n.StartPoint().Row + 1,
		EndLine:     n.EndPoint().Row + 1,
		StartColumn: n.StartPoint().Column,
		EndColumn:   n.EndPoint().Column,
		Visibility:  kotlinVisibility(n),
	}
	id := w.EmitNode(sym)
	extractDelegationSpecifiers(w, n, id)

	pop := w.PushScope(id, name)
	defer pop()
	if body := findChildByKind(n, "class_body"); body != nil {
		w.WalkChildren(body)
	}
}

func handleCompanionObject(w *walker.Walker, n *sourceparse.Node) {
	name, ok := kotlinName(n)
	if !ok {
		name = "Companion"
	}
	isStatic := true
	sym := walker.Symbol{
		Kind:        graph.KindClass,
		Name:        name,
		StartLine:   n.StartPoint().Row + 1,
		EndLine:     n.EndPoint().Row + 1,
		StartColumn: n.StartPoint().Column,
		EndColumn:   n.EndPoint().Column,
		IsStatic:    &isStatic,
	}
	id := w.EmitNode(sym)
	pop := w.PushScope(id, name)
	defer pop()
	if body := findChildByKind(n, "class_body"); body != nil {
		w.WalkChildren(body)
	}
}

func handlePropertyDeclaration(w *walker.Walker, n *sourceparse.Node) {
	varDecl := findChildByKind(n, "variable_declaration")
	var name string
	var ok bool
	if varDecl != nil {
		if id := findChildByKind(varDecl, "simple_identifier"); id != nil {
			name, ok = id.Text(), true
		}
	}
	if !ok {
		w.WalkChildren(n)
		return
	}

	kindTag := graph.KindProperty
	if hasDirectOrModifierToken(n, "const") {
		kindTag = graph.KindConstant
	}
	sym := walker.Symbol{
		Kind:        kindTag,
		Name:        name,
		StartLine:   n.StartPoint().Row + 1,
		EndLine:     n.EndPoint().Row + 1,
		StartColumn: n.StartPoint().Column,
		EndColumn:   n.EndPoint().Column,
		Visibility:  kotlinVisibility(n),
	}
	w.EmitNode(sym)
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

func kotlinName(n *sourceparse.Node) (string, bool) {
	if field := n.ChildByFieldName("name"); field != nil {
		return field.Text(), true
	}
	if id := findChildByKind(n, "type_identifier"); id != nil {
		return id.Text(), true
	}
	if id := findChildByKind(n, "simple_identifier"); id != nil {
		return id.Text(), true
	}
	return "", false
}

func kotlinVisibility(n *sourceparse.Node) graph.Visibility {
	switch {
	case hasDirectOrModifierToken(n, "public"):
		return graph.VisibilityPublic
	case hasDirectOrModifierToken(n, "private"):
		return graph.VisibilityPrivate
	case hasDirectOrModifierToken(n, "protected"):
		return graph.VisibilityProtected
	case hasDirectOrModifierToken(n, "internal"):
		return graph.VisibilityInternal
	}
	return policy.Table[registry.LangKotlin].DefaultVisibility
}

// extractDelegationSpecifiers applies Kotlin's inheritance rule: a
// delegation_specifier containing a constructor_invocation is an
// `extends` for the first such specifier and `implements` for the rest; a
// plain user_type specifier is always `implements`.
func extractDelegationSpecifiers(w *walker.Walker, n *sourceparse.Node, fromID string) {
	specifiers := findChildrenByKind(n, "delegation_specifier")
	if wrapper := findChildByKind(n, "delegation_specifiers"); wrapper != nil {
		specifiers = append(specifiers, findChildrenByKind(wrapper, "delegation_specifier")...)
	}
	extendsUsed := false
	for _, spec := range specifiers {
		name, isCtor := delegationSpecifierName(spec)
		if name == "" {
			continue
		}
		if isCtor && !extendsUsed {
			extendsUsed = true
			w.EmitReference(fromID, graph.RefExtends, name, spec.StartPoint())
			continue
		}
		w.EmitReference(fromID, graph.RefImplements, name, spec.StartPoint())
	}
}

func delegationSpecifierName(spec *sourceparse.Node) (string, bool) {
	if ctor := findChildByKind(spec, "constructor_invocation"); ctor != nil {
		if t := findChildByKind(ctor, "user_type"); t != nil {
			return t.Text(), true
		}
		return strings.TrimSuffix(ctor.Text(), "()"), true
	}
	if t := findChildByKind(spec, "user_type"); t != nil {
		return t.Text(), false
	}
	return "", false
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
