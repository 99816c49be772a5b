package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectByExtension(t *testing.T) {
	cases := map[string]Language{
		"foo.ts":        LangTypeScript,
		"foo.tsx":       LangTSX,
		"foo.js":        LangJavaScript,
		"foo.mjs":       LangJavaScript,
		"foo.cjs":       LangJavaScript,
		"foo.jsx":       LangJSX,
		"foo.py":        LangPython,
		"foo.go":        LangGo,
		"foo.rs":        LangRust,
		"foo.java":      LangJava,
		"foo.c":         LangC,
		"foo.h":         LangC,
		"foo.cpp":       LangCPP,
		"foo.cc":        LangCPP,
		"foo.cxx":       LangCPP,
		"foo.hpp":       LangCPP,
		"foo.cs":        LangCSharp,
		"foo.php":       LangPHP,
		"foo.rb":        LangRuby,
		"foo.swift":     LangSwift,
		"foo.kt":        LangKotlin,
		"foo.kts":       LangKotlin,
		"foo.liquid":    LangLiquid,
		"foo.unknownxx": LangUnknown,
		"foo":           LangUnknown,
	}
	for path, want := range cases {
		assert.Equal(t, want, Detect(path), "path %s", path)
	}
}

func TestDetectIsCaseSensitive(t *testing.T) {
	assert.Equal(t, LangUnknown, Detect("foo.TS"))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(LangGo))
	assert.True(t, Supported(LangLiquid))
	assert.False(t, Supported(LangUnknown))
}

func TestHasParserExcludesLiquid(t *testing.T) {
	assert.False(t, HasParser(LangLiquid))
	assert.True(t, IsPatternBased(LangLiquid))
}
