package bbolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corey/codegraph/internal/graph"
	"github.com/corey/codegraph/internal/sinkport"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	store, err := NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func makeTestBatch(filePath string) sinkport.Batch {
	return sinkport.Batch{
		FilePath:    filePath,
		ContentHash: "abc123",
		Nodes: []graph.Node{
			{ID: "fn:1", Kind: graph.KindFunction, Name: "login", FilePath: filePath, Language: "python", StartLine: 10, EndLine: 25},
			{ID: "cls:1", Kind: graph.KindClass, Name: "SessionManager", FilePath: filePath, Language: "python", StartLine: 5, EndLine: 80},
		},
		Edges: []graph.Edge{
			{SourceID: graph.FileID(filePath), TargetID: "fn:1", Kind: graph.EdgeContains},
			{SourceID: graph.FileID(filePath), TargetID: "cls:1", Kind: graph.EdgeContains},
		},
		Refs: []graph.UnresolvedReference{
			{FromNodeID: "fn:1", Name: "authenticate", Kind: graph.RefCalls},
		},
	}
}

func TestStore_ReplaceBatch_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	batch := makeTestBatch("services/auth/handler.py")

	require.NoError(t, store.ReplaceBatch(ctx, batch))

	hash, exists, err := store.ContentHash(ctx, batch.FilePath)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, batch.ContentHash, hash)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FileCount)
	assert.Equal(t, 2, stats.NodeCount)
	assert.Equal(t, 2, stats.EdgeCount)
	assert.Equal(t, 1, stats.NodesByKind[graph.KindFunction])
	assert.Equal(t, 1, stats.NodesByKind[graph.KindClass])
}

func TestStore_ReplaceBatch_Overwrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	filePath := "services/auth/handler.py"

	require.NoError(t, store.ReplaceBatch(ctx, makeTestBatch(filePath)))

	second := makeTestBatch(filePath)
	second.ContentHash = "def456"
	second.Nodes = second.Nodes[:1]
	second.Edges = second.Edges[:1]
	require.NoError(t, store.ReplaceBatch(ctx, second))

	hash, exists, err := store.ContentHash(ctx, filePath)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "def456", hash)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FileCount)
	assert.Equal(t, 1, stats.NodeCount)
}

func TestStore_ContentHash_MissingFile(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, exists, err := store.ContentHash(ctx, "nope.py")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStore_DeleteFile(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceBatch(ctx, makeTestBatch("a.py")))
	require.NoError(t, store.ReplaceBatch(ctx, makeTestBatch("b.py")))

	require.NoError(t, store.DeleteFile(ctx, "a.py"))

	_, exists, err := store.ContentHash(ctx, "a.py")
	require.NoError(t, err)
	assert.False(t, exists)

	_, exists, err = store.ContentHash(ctx, "b.py")
	require.NoError(t, err)
	assert.True(t, exists)

	// Deleting a missing file is idempotent.
	assert.NoError(t, store.DeleteFile(ctx, "a.py"))
}

func TestStore_Stats_AcrossMultipleFiles(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.ReplaceBatch(ctx, makeTestBatch("a.py")))
	require.NoError(t, store.ReplaceBatch(ctx, makeTestBatch("b.py")))

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.FileCount)
	assert.Equal(t, 4, stats.NodeCount)
	assert.Equal(t, 4, stats.EdgeCount)
	assert.Equal(t, 2, stats.FilesByLang["python"])
}

func TestStore_CrashRecovery(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crash.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)

	batch := makeTestBatch("services/auth/handler.py")
	require.NoError(t, store.ReplaceBatch(ctx, batch))
	require.NoError(t, store.Close())

	store2, err := NewStore(path)
	require.NoError(t, err)
	defer store2.Close()

	hash, exists, err := store2.ContentHash(ctx, batch.FilePath)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, batch.ContentHash, hash)
}

func TestStore_ConcurrentReads(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.ReplaceBatch(ctx, makeTestBatch("a.py")))

	var wg sync.WaitGroup
	errs := make(chan error, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, exists, err := store.ContentHash(ctx, "a.py")
			if err != nil {
				errs <- err
				return
			}
			if !exists {
				errs <- fmt.Errorf("expected a.py to exist")
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent read error: %v", err)
	}
}

func TestStore_LargeBatch_Performance(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	batch := sinkport.Batch{FilePath: "big.py", ContentHash: "bighash"}
	for i := 0; i < 500; i++ {
		id := fmt.Sprintf("fn:%d", i)
		batch.Nodes = append(batch.Nodes, graph.Node{
			ID: id, Kind: graph.KindFunction, Name: fmt.Sprintf("fn_%d", i),
			FilePath: "big.py", Language: "python", StartLine: i, EndLine: i + 10,
		})
		batch.Edges = append(batch.Edges, graph.Edge{
			SourceID: graph.FileID("big.py"), TargetID: id, Kind: graph.EdgeContains,
		})
	}

	start := time.Now()
	err := store.ReplaceBatch(ctx, batch)
	saveTime := time.Since(start)
	require.NoError(t, err)

	start = time.Now()
	stats, err := store.Stats(ctx)
	loadTime := time.Since(start)
	require.NoError(t, err)

	assert.Equal(t, 500, stats.NodeCount)
	assert.Less(t, saveTime, 200*time.Millisecond, "save took %v", saveTime)
	assert.Less(t, loadTime, 200*time.Millisecond, "stats took %v", loadTime)
}

func TestStore_StateSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "restart.db")
	ctx := context.Background()

	store1, err := NewStore(path)
	require.NoError(t, err)

	batch := makeTestBatch("a.py")
	require.NoError(t, store1.ReplaceBatch(ctx, batch))
	require.NoError(t, store1.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	store2, err := NewStore(path)
	require.NoError(t, err)
	defer store2.Close()

	hash, exists, err := store2.ContentHash(ctx, "a.py")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, batch.ContentHash, hash)
}

// =============================================================================
// Lock contention tests — verify the 1s timeout prevents hangs
// =============================================================================

func TestStore_OpenTimeout_DoesNotHang(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.db")

	store1, err := NewStore(path)
	require.NoError(t, err)
	defer store1.Close()

	start := time.Now()
	store2, err := NewStore(path)
	elapsed := time.Since(start)

	require.Error(t, err, "second open should fail with lock timeout")
	assert.Nil(t, store2, "store should be nil on timeout")
	assert.Contains(t, err.Error(), "timeout", "error should mention timeout")
	assert.Less(t, elapsed, 3*time.Second, "should complete within 3s, not hang")
	assert.GreaterOrEqual(t, elapsed, 900*time.Millisecond, "should wait ~1s for the configured timeout")
}

func TestStore_OpenTimeout_ErrorMessage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.db")

	store1, err := NewStore(path)
	require.NoError(t, err)
	defer store1.Close()

	_, err = NewStore(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bbolt open")
	assert.Contains(t, err.Error(), "timeout")
}

func TestStore_OpenAfterClose_Succeeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "released.db")
	ctx := context.Background()

	store1, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store1.ReplaceBatch(ctx, makeTestBatch("a.py")))
	store1.Close()

	start := time.Now()
	store2, err := NewStore(path)
	elapsed := time.Since(start)

	require.NoError(t, err, "open after close should succeed")
	require.NotNil(t, store2)
	assert.Less(t, elapsed, 500*time.Millisecond, "should open instantly after lock released")
	defer store2.Close()

	_, exists, err := store2.ContentHash(ctx, "a.py")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStore_OpenTimeout_ConcurrentAttempts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "locked.db")

	store1, err := NewStore(path)
	require.NoError(t, err)
	defer store1.Close()

	const n = 3
	errs := make(chan error, n)
	durations := make(chan time.Duration, n)

	for i := 0; i < n; i++ {
		go func() {
			start := time.Now()
			s, err := NewStore(path)
			durations <- time.Since(start)
			if s != nil {
				s.Close()
			}
			errs <- err
		}()
	}

	for i := 0; i < n; i++ {
		err := <-errs
		d := <-durations
		assert.Error(t, err, "concurrent open %d should fail", i)
		assert.Contains(t, err.Error(), "timeout")
		assert.Less(t, d, 3*time.Second, "concurrent open %d should not hang", i)
	}
}
