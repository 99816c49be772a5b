// Package extract wires the language registry, parser gateway, policy
// table, generic walker, dialect walkers, and pattern extractor into a
// single entry point: a pure (filePath, source) -> result mapping, plus
// a bounded worker pool for batch extraction.
package extract

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/corey/codegraph/internal/graph"
	"github.com/corey/codegraph/internal/liquidscan"
	"github.com/corey/codegraph/internal/policy"
	"github.com/corey/codegraph/internal/registry"
	"github.com/corey/codegraph/internal/sourceparse"
	"github.com/corey/codegraph/internal/walker"
	"github.com/corey/codegraph/internal/walker/kotlindialect"
	"github.com/corey/codegraph/internal/walker/swiftdialect"
)

// Result is one file's extraction output, plus the content hash the
// downstream sink needs for incremental sync.
type Result struct {
	FilePath             string
	ContentHash          string
	Nodes                []graph.Node
	Edges                []graph.Edge
	UnresolvedReferences []graph.UnresolvedReference
	Errors               []graph.ExtractionError
	DurationMs           int64
}

// Extractor holds one Gateway, meant to be used from a single goroutine at
// a time. Construct one per worker when fanning out — see ExtractBatch.
type Extractor struct {
	gateway *sourceparse.Gateway
}

// New builds an Extractor around the given Gateway. Pass sourceparse.NewGateway()
// for a standalone extractor, or a pooled gateway when fanning out.
func New(gateway *sourceparse.Gateway) *Extractor {
	return &Extractor{gateway: gateway}
}

func hooksFor(lang registry.Language) *walker.Hooks {
	switch lang {
	case registry.LangKotlin:
		return kotlindialect.NewHooks()
	case registry.LangSwift:
		return swiftdialect.NewHooks()
	default:
		return nil
	}
}

// ExtractFile is the extractor's entry point. languageHint, when
// non-empty, overrides extension-based detection. The extractor never
// panics or returns a Go error across this boundary — every failure mode
// becomes an entry in Result.Errors.
func (e *Extractor) ExtractFile(filePath string, source []byte, languageHint registry.Language) Result {
	start := time.Now()
	hash := ContentHash(source)
	lang := languageHint
	if lang == "" {
		lang = registry.Detect(filePath)
	}

	if !registry.Supported(lang) {
		return Result{
			FilePath:    filePath,
			ContentHash: hash,
			Errors: []graph.ExtractionError{{
				Message:  fmt.Sprintf("unsupported language for %q", filePath),
				Severity: graph.SeverityError,
			}},
			DurationMs: elapsedMs(start),
		}
	}

	if registry.IsPatternBased(lang) {
		r := liquidscan.Scan(filePath, source)
		return Result{
			FilePath:             filePath,
			ContentHash:          hash,
			Nodes:                r.Nodes,
			Edges:                r.Edges,
			UnresolvedReferences: r.Refs,
			Errors:               r.Errors,
			DurationMs:           elapsedMs(start),
		}
	}

	tree, err := e.gateway.ParseFile(lang, source)
	if err != nil {
		return Result{
			FilePath:    filePath,
			ContentHash: hash,
			Errors: []graph.ExtractionError{{
				Message:  err.Error(),
				Severity: graph.SeverityError,
			}},
			DurationMs: elapsedMs(start),
		}
	}
	defer tree.Close()

	rec, ok := policy.Table[lang]
	if !ok {
		return Result{
			FilePath:    filePath,
			ContentHash: hash,
			Errors: []graph.ExtractionError{{
				Message:  fmt.Sprintf("no policy record for language %q", lang),
				Severity: graph.SeverityError,
			}},
			DurationMs: elapsedMs(start),
		}
	}

	w := walker.New(filePath, string(lang), rec, hooksFor(lang), start.UnixMilli())
	walked := w.Walk(tree.Root())

	return Result{
		FilePath:             filePath,
		ContentHash:          hash,
		Nodes:                walked.Nodes,
		Edges:                walked.Edges,
		UnresolvedReferences: walked.Refs,
		Errors:               walked.Errors,
		DurationMs:           elapsedMs(start),
	}
}

// ContentHash hashes file content the same way ExtractFile does, so
// callers can compare against a stored hash before re-extracting.
func ContentHash(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
