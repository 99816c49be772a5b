// Package bbolt implements sinkport.Sink using bbolt (embedded B+ tree).
// Each file path gets its own sub-bucket under a top-level "files" bucket,
// holding its content hash plus its nodes, edges, and unresolved
// references. Edges use a compact length-prefixed binary encoding; nodes
// and references use gob. A sub-bucket is replaced wholesale inside one
// transaction, which is bbolt's atomicity boundary — a crash mid-write
// cannot leave a half-replaced batch visible.
package bbolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/corey/codegraph/internal/graph"
	"github.com/corey/codegraph/internal/sinkport"
)

var (
	bucketFiles = []byte("files")

	keyHash  = []byte("hash")
	keyNodes = []byte("nodes")
	keyEdges = []byte("edges")
	keyRefs  = []byte("refs")
)

// Store implements sinkport.Sink backed by bbolt.
type Store struct {
	db *bolt.DB
}

// NewStore opens (or creates) a bbolt database at the given path, creating
// its parent directory if needed.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("bbolt mkdir: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFiles)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying bbolt database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceBatch implements sinkport.Sink.
func (s *Store) ReplaceBatch(ctx context.Context, b sinkport.Batch) error {
	nodesBlob, err := encodeGob(b.Nodes)
	if err != nil {
		return fmt.Errorf("encode nodes: %w", err)
	}
	refsBlob, err := encodeGob(b.Refs)
	if err != nil {
		return fmt.Errorf("encode refs: %w", err)
	}
	edgesBlob := encodeEdges(b.Edges)

	return s.db.Update(func(tx *bolt.Tx) error {
		files := tx.Bucket(bucketFiles)
		if err := files.DeleteBucket([]byte(b.FilePath)); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		fb, err := files.CreateBucket([]byte(b.FilePath))
		if err != nil {
			return err
		}
		if err := fb.Put(keyHash, []byte(b.ContentHash)); err != nil {
			return err
		}
		if err := fb.Put(keyNodes, nodesBlob); err != nil {
			return err
		}
		if err := fb.Put(keyEdges, edgesBlob); err != nil {
			return err
		}
		return fb.Put(keyRefs, refsBlob)
	})
}

// ContentHash implements sinkport.Sink.
func (s *Store) ContentHash(ctx context.Context, filePath string) (string, bool, error) {
	var hash []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		files := tx.Bucket(bucketFiles)
		fb := files.Bucket([]byte(filePath))
		if fb == nil {
			return nil
		}
		if v := fb.Get(keyHash); v != nil {
			hash = make([]byte, len(v))
			copy(hash, v)
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	if hash == nil {
		return "", false, nil
	}
	return string(hash), true, nil
}

// DeleteFile implements sinkport.Sink. Idempotent.
func (s *Store) DeleteFile(ctx context.Context, filePath string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		files := tx.Bucket(bucketFiles)
		if err := files.DeleteBucket([]byte(filePath)); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		return nil
	})
}

// Stats implements sinkport.Sink.
func (s *Store) Stats(ctx context.Context) (sinkport.Stats, error) {
	stats := sinkport.Stats{
		NodesByKind: make(map[graph.Kind]int),
		FilesByLang: make(map[string]int),
	}

	err := s.db.View(func(tx *bolt.Tx) error {
		files := tx.Bucket(bucketFiles)
		return files.ForEach(func(name, v []byte) error {
			if v != nil {
				return nil // not a sub-bucket
			}
			fb := files.Bucket(name)
			stats.FileCount++

			var nodes []graph.Node
			if v := fb.Get(keyNodes); v != nil {
				if err := decodeGob(v, &nodes); err != nil {
					return fmt.Errorf("decode nodes for %s: %w", name, err)
				}
			}
			// A file's language is its file node's language, or the first
			// node's language when the batch carries no file node.
			lang := ""
			for _, n := range nodes {
				stats.NodeCount++
				stats.NodesByKind[n.Kind]++
				if lang == "" || n.Kind == graph.KindFile {
					lang = n.Language
				}
			}
			if lang != "" {
				stats.FilesByLang[lang]++
			}

			if v := fb.Get(keyEdges); v != nil {
				edges, err := decodeEdges(v)
				if err != nil {
					return fmt.Errorf("decode edges for %s: %w", name, err)
				}
				stats.EdgeCount += len(edges)
			}
			return nil
		})
	})
	return stats, err
}
