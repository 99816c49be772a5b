package walker

import (
	"strings"

	"github.com/corey/codegraph/internal/sourceparse"
)

var identifierVariants = map[string]bool{
	"identifier":      true,
	"type_identifier": true,
	"simple_identifier": true,
	"constant":        true,
}

// compoundDeclaratorKinds are C/C++ declarator wrappers that carry the
// real identifier one level down (e.g. a function_declarator wrapping a
// plain identifier for a function's return-type-qualified declarator).
var compoundDeclaratorKinds = map[string]bool{
	"function_declarator": true,
	"pointer_declarator":  true,
	"array_declarator":    true,
}

// commentKinds are the comment node types scanned for docstrings.
var commentKinds = map[string]bool{
	"comment":               true,
	"line_comment":          true,
	"block_comment":         true,
	"documentation_comment": true,
}

func firstIdentifierVariant(n *sourceparse.Node) *sourceparse.Node {
	if n == nil {
		return nil
	}
	for _, c := range n.NamedChildren() {
		if c != nil && identifierVariants[c.Kind()] {
			return c
		}
	}
	return nil
}

func findNamedChildByKind(n *sourceparse.Node, kind string) *sourceparse.Node {
	if n == nil {
		return nil
	}
	for _, c := range n.NamedChildren() {
		if c != nil && c.Kind() == kind {
			return c
		}
	}
	return nil
}

// extractName resolves the name field; if it is a compound declarator,
// recurse one level; else take the field itself if it is an identifier
// variant, falling back to the first identifier-variant named child.
func extractName(n *sourceparse.Node, nameField string) (string, bool) {
	if nameField == "" {
		if id := firstIdentifierVariant(n); id != nil {
			return id.Text(), true
		}
		return "", false
	}
	field := n.ChildByFieldName(nameField)
	if field == nil {
		if id := firstIdentifierVariant(n); id != nil {
			return id.Text(), true
		}
		return "", false
	}
	return resolveNameNode(field)
}

func resolveNameNode(field *sourceparse.Node) (string, bool) {
	if compoundDeclaratorKinds[field.Kind()] {
		if inner := field.ChildByFieldName("declarator"); inner != nil {
			return resolveNameNode(inner)
		}
		if id := firstIdentifierVariant(field); id != nil {
			return id.Text(), true
		}
		return "", false
	}
	if identifierVariants[field.Kind()] {
		return field.Text(), true
	}
	if id := firstIdentifierVariant(field); id != nil {
		return id.Text(), true
	}
	text := strings.TrimSpace(field.Text())
	if text == "" {
		return "", false
	}
	return text, true
}

// stripCommentMarkers removes, line by line, the leading "/**", "/*",
// "///", "//", "#" and "*" decoration and the trailing "*/" a comment
// carries in most C-family and scripting grammars, then trims surrounding
// whitespace.
func stripCommentMarkers(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		l = strings.TrimPrefix(l, "/**")
		l = strings.TrimPrefix(l, "/*")
		l = strings.TrimSuffix(l, "*/")
		l = strings.TrimPrefix(l, "///")
		l = strings.TrimPrefix(l, "//")
		l = strings.TrimPrefix(l, "#")
		l = strings.TrimPrefix(l, "*")
		out = append(out, strings.TrimSpace(l))
	}
	return strings.Trim(strings.Join(out, "\n"), "\n")
}

func unquote(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= 2 {
		first, last := text[0], text[len(text)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			return text[1 : len(text)-1]
		}
	}
	return text
}
