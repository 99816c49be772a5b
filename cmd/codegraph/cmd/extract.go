package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/corey/codegraph/internal/adapters/bbolt"
	"github.com/corey/codegraph/internal/extract"
	"github.com/corey/codegraph/internal/registry"
)

var flagPrint bool

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the knowledge graph for a project once and persist it",
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&flagPrint, "print", false, "print the extraction result as JSON instead of persisting it")
}

func runExtract(cmd *cobra.Command, args []string) error {
	settings, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	files, err := collectSourceFiles(settings.ProjectRoot, settings.IgnoreDirs)
	if err != nil {
		return fmt.Errorf("collect source files: %w", err)
	}
	logger.Info("discovered source files", "count", len(files))

	results, err := extract.ExtractBatch(context.Background(), settings.Workers, files)
	if err != nil {
		return fmt.Errorf("extract batch: %w", err)
	}

	if flagPrint {
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	store, err := bbolt.NewStore(settings.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	for _, r := range results {
		if len(r.Errors) > 0 {
			logger.Warn("extraction errors", "file", r.FilePath, "errors", len(r.Errors))
		}
		batch := toBatch(r)
		if err := store.ReplaceBatch(ctx, batch); err != nil {
			return fmt.Errorf("persist %s: %w", r.FilePath, err)
		}
	}

	logger.Info("extraction complete", "files", len(results))
	return nil
}

// collectSourceFiles walks root, filtering out ignored directories and
// paths the registry does not recognize, and reads every candidate file.
func collectSourceFiles(root string, ignoreDirs []string) ([]extract.SourceFile, error) {
	ignore := make(map[string]bool, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignore[d] = true
	}

	var files []extract.SourceFile
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && ignore[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		lang := registry.Detect(path)
		if !registry.Supported(lang) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		bytes, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		files = append(files, extract.SourceFile{Path: rel, Bytes: bytes, Language: lang})
		return nil
	})
	return files, err
}
