package fsnotify

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForEvent(ch <-chan Event, timeout time.Duration) (Event, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return Event{}, false
	}
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.py")
	require.NoError(t, os.WriteFile(testFile, []byte("# original"), 0644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	events := make(chan Event, 10)
	err = w.Watch(dir, func(e Event) { events <- e })
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(testFile, []byte("# modified"), 0644))

	e, ok := waitForEvent(events, 2*time.Second)
	assert.True(t, ok, "expected event for file change")
	assert.Equal(t, testFile, e.Path)
	assert.Equal(t, EventChanged, e.Kind)
}

func TestWatcher_DetectsNewFile(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	events := make(chan Event, 10)
	err = w.Watch(dir, func(e Event) { events <- e })
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	newFile := filepath.Join(dir, "new_file.py")
	require.NoError(t, os.WriteFile(newFile, []byte("# new"), 0644))

	e, ok := waitForEvent(events, 2*time.Second)
	assert.True(t, ok, "expected event for new file")
	assert.Equal(t, newFile, e.Path)
	assert.Equal(t, EventChanged, e.Kind)
}

func TestWatcher_DetectsDeletedFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "to_delete.py")
	require.NoError(t, os.WriteFile(testFile, []byte("# delete me"), 0644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	events := make(chan Event, 10)
	err = w.Watch(dir, func(e Event) { events <- e })
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.Remove(testFile))

	e, ok := waitForEvent(events, 2*time.Second)
	assert.True(t, ok, "expected event for deleted file")
	assert.Equal(t, testFile, e.Path)
	assert.Equal(t, EventRemoved, e.Kind)
}

func TestWatcher_IgnoresNonSourceFiles(t *testing.T) {
	dir := t.TempDir()

	gitDir := filepath.Join(dir, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0755))
	nmDir := filepath.Join(dir, "node_modules")
	require.NoError(t, os.MkdirAll(nmDir, 0755))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	events := make(chan Event, 10)
	err = w.Watch(dir, func(e Event) { events <- e })
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref"), 0644)
	os.WriteFile(filepath.Join(nmDir, "package.json"), []byte("{}"), 0644)
	os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644)

	_, ok := waitForEvent(events, 500*time.Millisecond)
	assert.False(t, ok, "should not have received an event for non-source files")

	codeFile := filepath.Join(dir, "main.py")
	require.NoError(t, os.WriteFile(codeFile, []byte("# code"), 0644))

	e, ok := waitForEvent(events, 2*time.Second)
	assert.True(t, ok, "expected event for source file")
	assert.Equal(t, codeFile, e.Path)
}

func TestWatcher_ReindexLatency(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "latency.py")
	require.NoError(t, os.WriteFile(testFile, []byte("# initial"), 0644))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Stop()

	var callbackTime time.Time
	var mu sync.Mutex
	err = w.Watch(dir, func(e Event) {
		mu.Lock()
		callbackTime = time.Now()
		mu.Unlock()
	})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	writeTime := time.Now()
	require.NoError(t, os.WriteFile(testFile, []byte("# changed"), 0644))

	time.Sleep(500 * time.Millisecond)

	mu.Lock()
	latency := callbackTime.Sub(writeTime)
	mu.Unlock()

	assert.Less(t, latency, 100*time.Millisecond, "callback latency %v exceeds 100ms", latency)
	t.Logf("Callback latency: %v", latency)
}

func TestWatcher_StopCleanup(t *testing.T) {
	dir := t.TempDir()

	w, err := NewWatcher()
	require.NoError(t, err)

	callCount := 0
	var mu sync.Mutex
	err = w.Watch(dir, func(e Event) {
		mu.Lock()
		callCount++
		mu.Unlock()
	})
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	err = w.Stop()
	require.NoError(t, err)

	mu.Lock()
	countAfterStop := callCount
	mu.Unlock()

	os.WriteFile(filepath.Join(dir, "after_stop.py"), []byte("# nope"), 0644)
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	countAfterWrite := callCount
	mu.Unlock()

	assert.Equal(t, countAfterStop, countAfterWrite, "callbacks fired after Stop()")

	err = w.Stop()
	assert.NoError(t, err)
}
