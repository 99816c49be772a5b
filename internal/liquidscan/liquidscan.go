// Package liquidscan implements a pattern-based extractor for Liquid
// templates: no CST parser exists for Liquid in this pipeline, so it
// operates on raw text with regexes over the whole template, computing
// line numbers from match offsets, rather than a tree walk.
package liquidscan

import (
	"encoding/json"
	"regexp"

	"github.com/corey/codegraph/internal/graph"
)

var (
	renderOrIncludeRe = regexp.MustCompile(`\{%-?\s*(render|include)\s+'([^']+)'`)
	sectionRe         = regexp.MustCompile(`\{%-?\s*section\s+'([^']+)'`)
	schemaRe          = regexp.MustCompile(`(?s)\{%-?\s*schema\s*-?%\}(.*?)\{%-?\s*endschema\s*-?%\}`)
	assignRe          = regexp.MustCompile(`\{%-?\s*assign\s+([A-Za-z_][A-Za-z0-9_]*)\s*=`)
)

const schemaDocstringLimit = 200

// Scan extracts the same node/edge shape the CST-based walkers produce,
// from raw Liquid template text. Unknown or malformed constructs are
// skipped without error.
func Scan(filePath string, source []byte) Result {
	text := string(source)
	fileID := graph.FileID(filePath)

	result := Result{}
	result.Nodes = append(result.Nodes, graph.Node{
		ID:            fileID,
		Kind:          graph.KindFile,
		Name:          filePath,
		QualifiedName: filePath,
		FilePath:      filePath,
		Language:      "liquid",
		StartLine:     1,
		EndLine:       lineCount(text),
	})

	for _, m := range renderOrIncludeRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[4]:m[5]]
		line := lineAt(text, m[0])
		id := graph.Identity(filePath, graph.KindComponent, name, line)
		result.Nodes = append(result.Nodes, graph.Node{
			ID:            id,
			Kind:          graph.KindComponent,
			Name:          name,
			QualifiedName: graph.QualifiedName([]string{filePath}, name),
			FilePath:      filePath,
			Language:      "liquid",
			StartLine:     line,
			EndLine:       line,
		})
		result.Edges = append(result.Edges, graph.Edge{SourceID: fileID, TargetID: id, Kind: graph.EdgeContains})
		result.Refs = append(result.Refs, graph.UnresolvedReference{
			FromNodeID: id,
			Name:       "snippets/" + name + ".liquid",
			Kind:       graph.RefReferences,
			Line:       line,
		})
	}

	for _, m := range sectionRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		line := lineAt(text, m[0])
		id := graph.Identity(filePath, graph.KindComponent, name, line)
		result.Nodes = append(result.Nodes, graph.Node{
			ID:            id,
			Kind:          graph.KindComponent,
			Name:          name,
			QualifiedName: graph.QualifiedName([]string{filePath}, name),
			FilePath:      filePath,
			Language:      "liquid",
			StartLine:     line,
			EndLine:       line,
		})
		result.Edges = append(result.Edges, graph.Edge{SourceID: fileID, TargetID: id, Kind: graph.EdgeContains})
		result.Refs = append(result.Refs, graph.UnresolvedReference{
			FromNodeID: id,
			Name:       "sections/" + name + ".liquid",
			Kind:       graph.RefReferences,
			Line:       line,
		})
	}

	for _, m := range schemaRe.FindAllStringSubmatchIndex(text, -1) {
		body := text[m[2]:m[3]]
		line := lineAt(text, m[0])
		name := schemaName(body)
		id := graph.Identity(filePath, graph.KindConstant, name, line)
		result.Nodes = append(result.Nodes, graph.Node{
			ID:            id,
			Kind:          graph.KindConstant,
			Name:          name,
			QualifiedName: graph.QualifiedName([]string{filePath}, name),
			FilePath:      filePath,
			Language:      "liquid",
			StartLine:     line,
			EndLine:       line,
			Docstring:     truncate(body, schemaDocstringLimit),
		})
		result.Edges = append(result.Edges, graph.Edge{SourceID: fileID, TargetID: id, Kind: graph.EdgeContains})
	}

	for _, m := range assignRe.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		line := lineAt(text, m[0])
		id := graph.Identity(filePath, graph.KindVariable, name, line)
		result.Nodes = append(result.Nodes, graph.Node{
			ID:            id,
			Kind:          graph.KindVariable,
			Name:          name,
			QualifiedName: graph.QualifiedName([]string{filePath}, name),
			FilePath:      filePath,
			Language:      "liquid",
			StartLine:     line,
			EndLine:       line,
		})
		result.Edges = append(result.Edges, graph.Edge{SourceID: fileID, TargetID: id, Kind: graph.EdgeContains})
	}

	return result
}

// Result mirrors walker.Result's shape without importing the walker
// package — liquidscan has no CST, no scope stack, and no policy record,
// so it does not depend on the generic walker at all.
type Result struct {
	Nodes  []graph.Node
	Edges  []graph.Edge
	Refs   []graph.UnresolvedReference
	Errors []graph.ExtractionError
}

// schemaName attempts a JSON parse of the schema body and, if a top-level
// "name" string exists, returns it; otherwise the default "schema".
func schemaName(body string) string {
	var parsed struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil || parsed.Name == "" {
		return "schema"
	}
	return parsed.Name
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func lineCount(text string) int {
	count := 1
	for _, r := range text {
		if r == '\n' {
			count++
		}
	}
	return count
}

// lineAt returns the 1-based line number of byte offset idx within text.
func lineAt(text string, idx int) int {
	line := 1
	for i := 0; i < idx && i < len(text); i++ {
		if text[i] == '\n' {
			line++
		}
	}
	return line
}
