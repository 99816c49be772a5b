package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/corey/codegraph/internal/adapters/bbolt"
	fsw "github.com/corey/codegraph/internal/adapters/fsnotify"
	"github.com/corey/codegraph/internal/extract"
	"github.com/corey/codegraph/internal/registry"
	"github.com/corey/codegraph/internal/sourceparse"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Extract once, then keep the graph in sync as files change",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	settings, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	store, err := bbolt.NewStore(settings.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()

	files, err := collectSourceFiles(settings.ProjectRoot, settings.IgnoreDirs)
	if err != nil {
		return fmt.Errorf("collect source files: %w", err)
	}
	results, err := extract.ExtractBatch(ctx, settings.Workers, files)
	if err != nil {
		return fmt.Errorf("initial extract batch: %w", err)
	}
	for _, r := range results {
		if err := store.ReplaceBatch(ctx, toBatch(r)); err != nil {
			return fmt.Errorf("persist %s: %w", r.FilePath, err)
		}
	}
	logger.Info("initial extraction complete", "files", len(results))

	watcher, err := fsw.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Stop()

	gw := sourceparse.NewGateway()
	defer gw.Close()
	extractor := extract.New(gw)

	err = watcher.Watch(settings.ProjectRoot, func(e fsw.Event) {
		rel, relErr := filepath.Rel(settings.ProjectRoot, e.Path)
		if relErr != nil {
			rel = e.Path
		}

		switch e.Kind {
		case fsw.EventRemoved:
			if err := store.DeleteFile(ctx, rel); err != nil {
				logger.Error("delete file failed", "file", rel, "error", err)
			} else {
				logger.Info("removed from graph", "file", rel)
			}
		case fsw.EventChanged:
			source, readErr := os.ReadFile(e.Path)
			if readErr != nil {
				return // file vanished between event and read
			}
			hash := extract.ContentHash(source)
			prevHash, exists, hashErr := store.ContentHash(ctx, rel)
			if hashErr == nil && exists && prevHash == hash {
				return // content unchanged, skip re-extraction
			}
			result := extractor.ExtractFile(rel, source, registry.Detect(rel))
			if err := store.ReplaceBatch(ctx, toBatch(result)); err != nil {
				logger.Error("re-extraction failed", "file", rel, "error", err)
				return
			}
			logger.Info("re-extracted", "file", rel, "nodes", len(result.Nodes))
		}
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	logger.Info("watching for changes", "root", settings.ProjectRoot)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down")
	return nil
}
