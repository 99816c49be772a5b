package extract

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/corey/codegraph/internal/registry"
	"github.com/corey/codegraph/internal/sourceparse"
)

// SourceFile is one input to a batch extraction run: a path, its bytes,
// and an optional language override.
type SourceFile struct {
	Path     string
	Bytes    []byte
	Language registry.Language
}

// ExtractBatch runs ExtractFile over every file, one goroutine per file,
// with at most workers extractions in flight: a pool of workers Gateways
// is handed off through a channel, and each file's goroutine holds one
// Gateway for the duration of that file. Per-file extraction stays
// single-threaded and lock-free, and a Gateway is never used by two
// goroutines at once.
func ExtractBatch(ctx context.Context, workers int, files []SourceFile) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	pool := make(chan *sourceparse.Gateway, workers)
	for i := 0; i < workers; i++ {
		pool <- sourceparse.NewGateway()
	}
	defer func() {
		close(pool)
		for gw := range pool {
			gw.Close()
		}
	}()

	results := make([]Result, len(files))
	g, gCtx := errgroup.WithContext(ctx)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			gw := <-pool
			defer func() { pool <- gw }()

			results[i] = New(gw).ExtractFile(f.Path, f.Bytes, f.Language)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
