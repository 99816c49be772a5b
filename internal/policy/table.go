package policy

import (
	"github.com/corey/codegraph/internal/graph"
	"github.com/corey/codegraph/internal/registry"
	"github.com/corey/codegraph/internal/sourceparse"
)

// Table maps a supported parser-backed language to its policy record.
// Swift and Kotlin carry minimal records here (mainly CallTypes) because
// their class/interface/enum handling is owned by the dialect walkers in
// internal/walker/swiftdialect and internal/walker/kotlindialect, which
// embed the generic walker and intercept the node types the table would
// otherwise route generically.
var Table = map[registry.Language]*Record{
	registry.LangTypeScript: tsLikeRecord(),
	registry.LangTSX:        tsLikeRecord(),
	registry.LangJavaScript: tsLikeRecord(),
	registry.LangJSX:        tsLikeRecord(),
	registry.LangPython:     pythonRecord(),
	registry.LangGo:         goRecord(),
	registry.LangRust:       rustRecord(),
	registry.LangJava:       javaRecord(),
	registry.LangC:          cRecord(),
	registry.LangCPP:        cppRecord(),
	registry.LangCSharp:     csharpRecord(),
	registry.LangPHP:        phpRecord(),
	registry.LangRuby:       rubyRecord(),
	registry.LangSwift:      swiftBaseRecord(),
	registry.LangKotlin:     kotlinBaseRecord(),
}

func tsLikeRecord() *Record {
	return &Record{
		FunctionTypes:  typeSet("function_declaration", "function_expression", "arrow_function", "generator_function_declaration"),
		ClassTypes:     typeSet("class_declaration"),
		MethodTypes:    typeSet("method_definition", "public_field_definition", "field_definition"),
		InterfaceTypes: typeSet("interface_declaration"),
		EnumTypes:      typeSet("enum_declaration"),
		ImportTypes:    typeSet("import_statement"),
		CallTypes:      typeSet("call_expression"),
		NameField:      "name",
		BodyField:      "body",
		ParamsField:    "parameters",
		ReturnField:    "return_type",
		Separator:      ": ",
		Signature: func(n *sourceparse.Node) (string, bool) {
			return DefaultSignature(n, "parameters", "return_type", ": ")
		},
		Exported: func(n *sourceparse.Node) bool {
			p := n.Parent()
			return p != nil && p.Kind() == "export_statement"
		},
		Async: func(n *sourceparse.Node) bool {
			return hasModifierToken(n, "async")
		},
		Static: func(n *sourceparse.Node) bool {
			return hasModifierToken(n, "static")
		},
	}
}

func pythonRecord() *Record {
	return &Record{
		// function_definition serves both free functions and methods —
		// rule 1 of the dispatch priority disambiguates by scope stack.
		FunctionTypes: typeSet("function_definition"),
		MethodTypes:   typeSet("function_definition"),
		ClassTypes:    typeSet("class_definition"),
		ImportTypes:   typeSet("import_statement", "import_from_statement"),
		CallTypes:     typeSet("call"),
		NameField:     "name",
		BodyField:     "body",
		ParamsField:   "parameters",
		ReturnField:   "return_type",
		Separator:     " -> ",
		Signature: func(n *sourceparse.Node) (string, bool) {
			return DefaultSignature(n, "parameters", "return_type", " -> ")
		},
		Async: func(n *sourceparse.Node) bool {
			return hasDirectOrModifierToken(n, "async")
		},
	}
}

func goRecord() *Record {
	return &Record{
		FunctionTypes:  typeSet("function_declaration"),
		MethodTypes:    typeSet("method_declaration"),
		InterfaceTypes: typeSet("interface_type"),
		StructTypes:    typeSet("struct_type"),
		ImportTypes:    typeSet("import_spec"),
		CallTypes:      typeSet("call_expression"),
		NameField:      "name",
		BodyField:      "body",
		ParamsField:    "parameters",
		ReturnField:    "result",
		Separator:      " ",
		Signature: func(n *sourceparse.Node) (string, bool) {
			return DefaultSignature(n, "parameters", "result", " ")
		},
		Exported: func(n *sourceparse.Node) bool {
			name := n.ChildByFieldName("name")
			if name == nil {
				return false
			}
			return isUpperFirstRune(name.Text())
		},
		GoReceiverMethod: true,
	}
}

func rustRecord() *Record {
	return &Record{
		FunctionTypes:  typeSet("function_item"),
		InterfaceTypes: typeSet("trait_item"),
		InterfaceKind:  graph.KindTrait,
		StructTypes:    typeSet("struct_item"),
		EnumTypes:      typeSet("enum_item"),
		ImportTypes:    typeSet("use_declaration"),
		CallTypes:      typeSet("call_expression"),
		NameField:      "name",
		BodyField:      "body",
		ParamsField:    "parameters",
		ReturnField:    "return_type",
		Separator:      " -> ",
		Signature: func(n *sourceparse.Node) (string, bool) {
			return DefaultSignature(n, "parameters", "return_type", " -> ")
		},
		Visibility: func(n *sourceparse.Node) (graph.Visibility, bool) {
			if findChildByKind(n, "visibility_modifier") != nil {
				return graph.VisibilityPublic, true
			}
			return "", false
		},
		DefaultVisibility: graph.VisibilityPrivate,
	}
}

func javaRecord() *Record {
	// Java has no free functions: FunctionTypes is deliberately empty so
	// the generic walker's top-level-function branch never fires, and
	// method extraction is carried entirely by MethodTypes.
	return &Record{
		ClassTypes:     typeSet("class_declaration"),
		MethodTypes:    typeSet("method_declaration", "constructor_declaration"),
		InterfaceTypes: typeSet("interface_declaration"),
		EnumTypes:      typeSet("enum_declaration"),
		ImportTypes:    typeSet("import_declaration"),
		CallTypes:      typeSet("method_invocation"),
		NameField:      "name",
		BodyField:      "body",
		ParamsField:    "parameters",
		ReturnField:    "type",
		Separator:      " ",
		Signature: func(n *sourceparse.Node) (string, bool) {
			ret := n.ChildByFieldName("type")
			params := n.ChildByFieldName("parameters")
			if params == nil {
				return "", false
			}
			if ret != nil {
				return ret.Text() + " " + params.Text(), true
			}
			return params.Text(), true
		},
		Visibility: func(n *sourceparse.Node) (graph.Visibility, bool) {
			switch {
			case hasDirectOrModifierToken(n, "public"):
				return graph.VisibilityPublic, true
			case hasDirectOrModifierToken(n, "private"):
				return graph.VisibilityPrivate, true
			case hasDirectOrModifierToken(n, "protected"):
				return graph.VisibilityProtected, true
			}
			return "", false
		},
		Static: func(n *sourceparse.Node) bool {
			return hasDirectOrModifierToken(n, "static")
		},
	}
}

func cRecord() *Record {
	return &Record{
		FunctionTypes: typeSet("function_definition"),
		StructTypes:   typeSet("struct_specifier"),
		EnumTypes:     typeSet("enum_specifier"),
		ImportTypes:   typeSet("preproc_include"),
		CallTypes:     typeSet("call_expression"),
		NameField:     "declarator",
		BodyField:     "body",
		ParamsField:   "parameters",
	}
}

func cppRecord() *Record {
	return &Record{
		ClassTypes:  typeSet("class_specifier"),
		MethodTypes: typeSet("function_definition"),
		StructTypes: typeSet("struct_specifier"),
		EnumTypes:   typeSet("enum_specifier"),
		ImportTypes: typeSet("preproc_include"),
		CallTypes:   typeSet("call_expression"),
		NameField:   "declarator",
		BodyField:   "body",
		ParamsField: "parameters",
	}
}

func csharpRecord() *Record {
	return &Record{
		ClassTypes:     typeSet("class_declaration"),
		MethodTypes:    typeSet("method_declaration", "constructor_declaration"),
		InterfaceTypes: typeSet("interface_declaration"),
		StructTypes:    typeSet("struct_declaration"),
		EnumTypes:      typeSet("enum_declaration"),
		ImportTypes:    typeSet("using_directive"),
		CallTypes:      typeSet("invocation_expression"),
		NameField:      "name",
		BodyField:      "body",
		ParamsField:    "parameter_list",
		ReturnField:    "type",
		Separator:      " ",
		Signature: func(n *sourceparse.Node) (string, bool) {
			return DefaultSignature(n, "parameter_list", "type", " ")
		},
		Visibility: func(n *sourceparse.Node) (graph.Visibility, bool) {
			switch {
			case hasDirectOrModifierToken(n, "public"):
				return graph.VisibilityPublic, true
			case hasDirectOrModifierToken(n, "private"):
				return graph.VisibilityPrivate, true
			case hasDirectOrModifierToken(n, "protected"):
				return graph.VisibilityProtected, true
			case hasDirectOrModifierToken(n, "internal"):
				return graph.VisibilityInternal, true
			}
			return "", false
		},
		DefaultVisibility: graph.VisibilityInternal,
		Static: func(n *sourceparse.Node) bool {
			return hasDirectOrModifierToken(n, "static")
		},
	}
}

func phpRecord() *Record {
	return &Record{
		ClassTypes:     typeSet("class_declaration"),
		MethodTypes:    typeSet("method_declaration"),
		InterfaceTypes: typeSet("interface_declaration"),
		EnumTypes:      typeSet("enum_declaration"),
		ImportTypes:    typeSet("namespace_use_declaration"),
		CallTypes:      typeSet("function_call_expression", "member_call_expression", "scoped_call_expression"),
		NameField:      "name",
		BodyField:      "body",
		ParamsField:    "parameters",
		ReturnField:    "return_type",
		Separator:      ": ",
		Signature: func(n *sourceparse.Node) (string, bool) {
			return DefaultSignature(n, "parameters", "return_type", ": ")
		},
		Visibility: func(n *sourceparse.Node) (graph.Visibility, bool) {
			switch {
			case hasDirectOrModifierToken(n, "public"):
				return graph.VisibilityPublic, true
			case hasDirectOrModifierToken(n, "private"):
				return graph.VisibilityPrivate, true
			case hasDirectOrModifierToken(n, "protected"):
				return graph.VisibilityProtected, true
			}
			return "", false
		},
		DefaultVisibility: graph.VisibilityPublic,
		Static: func(n *sourceparse.Node) bool {
			return hasDirectOrModifierToken(n, "static")
		},
	}
}

// Ruby has no import statement node: require/require_relative/load are
// ordinary method calls, indistinguishable at the CST level from any other
// call. ImportTypes is left empty so every "call" node reaches
// dispatchCall and is recorded as a calls reference, same as any other
// Ruby method invocation.
func rubyRecord() *Record {
	return &Record{
		ClassTypes:  typeSet("class"),
		MethodTypes: typeSet("method", "singleton_method"),
		CallTypes:   typeSet("call", "method_call"),
		NameField:   "name",
		BodyField:   "body",
		ParamsField: "parameters",
	}
}

// swiftBaseRecord covers what the dialect walker leaves to generic
// dispatch: function_declaration (function vs method, signature, async,
// static) and call sites. Class/struct/enum/protocol routing is entirely
// owned by internal/walker/swiftdialect.
func swiftBaseRecord() *Record {
	return &Record{
		FunctionTypes:     typeSet("function_declaration"),
		MethodTypes:       typeSet("function_declaration"),
		CallTypes:         typeSet("call_expression"),
		NameField:         "name",
		BodyField:         "function_body",
		ParamsField:       "parameter",
		ReturnField:       "return_type",
		Separator:         " -> ",
		DefaultVisibility: graph.VisibilityInternal,
		Signature: func(n *sourceparse.Node) (string, bool) {
			return DefaultSignature(n, "parameter", "return_type", " -> ")
		},
		Async: func(n *sourceparse.Node) bool {
			return hasModifierToken(n, "async")
		},
		Static: func(n *sourceparse.Node) bool {
			return hasModifierToken(n, "static") || hasModifierToken(n, "class")
		},
	}
}

// kotlinBaseRecord mirrors swiftBaseRecord for internal/walker/kotlindialect.
func kotlinBaseRecord() *Record {
	return &Record{
		FunctionTypes:     typeSet("function_declaration"),
		MethodTypes:       typeSet("function_declaration"),
		CallTypes:         typeSet("call_expression"),
		NameField:         "name",
		BodyField:         "body",
		ParamsField:       "value_parameters",
		ReturnField:       "type",
		Separator:         ": ",
		DefaultVisibility: graph.VisibilityPublic,
		Signature: func(n *sourceparse.Node) (string, bool) {
			return DefaultSignature(n, "value_parameters", "type", ": ")
		},
		Async: func(n *sourceparse.Node) bool {
			return hasDirectOrModifierToken(n, "suspend")
		},
	}
}
