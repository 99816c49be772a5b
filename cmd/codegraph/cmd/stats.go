package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/corey/codegraph/internal/adapters/bbolt"
	"github.com/corey/codegraph/internal/graph"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show node/edge counts from a persisted graph",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	settings, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	store, err := bbolt.NewStore(settings.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	fmt.Printf("%sfiles%s      %d\n", colorBold, colorReset, stats.FileCount)
	fmt.Printf("%snodes%s      %d\n", colorBold, colorReset, stats.NodeCount)
	fmt.Printf("%sedges%s      %d\n", colorBold, colorReset, stats.EdgeCount)

	if len(stats.NodesByKind) > 0 {
		fmt.Printf("\n%sby kind%s\n", colorBold, colorReset)
		kinds := make([]string, 0, len(stats.NodesByKind))
		for k := range stats.NodesByKind {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Printf("  %-14s %d\n", k, stats.NodesByKind[graph.Kind(k)])
		}
	}

	if len(stats.FilesByLang) > 0 {
		fmt.Printf("\n%sby language%s\n", colorBold, colorReset)
		langs := make([]string, 0, len(stats.FilesByLang))
		for l := range stats.FilesByLang {
			langs = append(langs, l)
		}
		sort.Strings(langs)
		for _, l := range langs {
			fmt.Printf("  %-14s %d\n", l, stats.FilesByLang[l])
		}
	}

	return nil
}
