package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Identity computes the stable ID for a node: "kind:" followed by the first
// 32 hex characters (16 bytes) of the SHA-256 digest of filePath, kind,
// name, and startLine joined by NUL. Re-extracting an unchanged symbol at
// the same location always yields the same ID; a symbol that moves lines
// or gets renamed gets a new one.
func Identity(filePath string, kind Kind, name string, startLine int) string {
	h := sha256.New()
	h.Write([]byte(filePath))
	h.Write([]byte{0})
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(startLine)))
	sum := h.Sum(nil)
	return string(kind) + ":" + hex.EncodeToString(sum[:16])
}

// QualifiedName joins a scope chain and a leaf name with "::". Empty scope
// segments are dropped so a file-scope symbol's qualified name is just its
// own name, not "::name".
func QualifiedName(scope []string, name string) string {
	parts := make([]string, 0, len(scope)+1)
	for _, s := range scope {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, "::")
}

// FileID computes the identity of the synthetic node representing a whole
// file, used as the source of top-level containment edges and of
// file-scope unresolved references such as imports.
func FileID(filePath string) string {
	return Identity(filePath, KindFile, filePath, 0)
}

// Ptr is a tiny helper so callers can write graph.Ptr(true) instead of
// taking the address of a local variable when populating optional flags.
func Ptr(b bool) *bool {
	return &b
}

// String renders a node kind/identity pair for debug logging.
func (n Node) String() string {
	return fmt.Sprintf("%s %s@%s:%d", n.Kind, n.QualifiedName, n.FilePath, n.StartLine)
}
