package sourceparse

import (
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	ts_kotlin "github.com/tree-sitter-grammars/tree-sitter-kotlin/bindings/go"
	ts_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	ts_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	ts_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	ts_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	ts_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	ts_ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
	ts_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
	ts_swift "github.com/alexaandru/go-sitter-forest/swift"

	"github.com/corey/codegraph/internal/registry"
)

// langPtr wraps a grammar's Language() unsafe.Pointer into the go-tree-sitter
// Language handle the parser actually consumes.
func langPtr(p unsafe.Pointer) *tree_sitter.Language {
	return tree_sitter.NewLanguage(p)
}

// builtinGrammars maps every parser-backed language tag to its concrete
// grammar. JSX reuses the JavaScript grammar; TSX uses the TSX variant
// shipped in the TypeScript grammar package. Both reuse the JS/TS policy
// records.
func builtinGrammars() map[registry.Language]*tree_sitter.Language {
	return map[registry.Language]*tree_sitter.Language{
		registry.LangGo:         langPtr(ts_go.Language()),
		registry.LangPython:     langPtr(ts_python.Language()),
		registry.LangJavaScript: langPtr(ts_javascript.Language()),
		registry.LangJSX:        langPtr(ts_javascript.Language()),
		registry.LangTypeScript: langPtr(ts_typescript.LanguageTypescript()),
		registry.LangTSX:        langPtr(ts_typescript.LanguageTSX()),
		registry.LangJava:       langPtr(ts_java.Language()),
		registry.LangC:          langPtr(ts_c.Language()),
		registry.LangCPP:        langPtr(ts_cpp.Language()),
		registry.LangCSharp:     langPtr(ts_csharp.Language()),
		registry.LangPHP:        langPtr(ts_php.LanguagePHP()),
		registry.LangRuby:       langPtr(ts_ruby.Language()),
		registry.LangRust:       langPtr(ts_rust.Language()),
		registry.LangKotlin:     langPtr(ts_kotlin.Language()),
		registry.LangSwift:      langPtr(ts_swift.GetLanguage()),
	}
}
