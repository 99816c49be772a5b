package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/corey/codegraph/internal/appconfig"
)

var (
	flagRoot      string
	flagDB        string
	flagWorkers   int
	flagLogLevel  string
	flagLogFormat string
)

var rootCmd = &cobra.Command{
	Use:   "codegraph",
	Short: "codegraph — multi-language code knowledge graph extractor",
	Long:  "Parses a source tree into a typed symbol graph: functions, classes, methods, calls, imports.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "project root to operate on (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the graph database (default: <root>/.codegraph/graph.db)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "number of extraction workers (default: NumCPU)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format: text, json")

	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings resolves settings from flags/env/config-file and builds a
// logger from the result.
func loadSettings(cmd *cobra.Command) (*appconfig.Settings, *slog.Logger, error) {
	settings, err := appconfig.LoadSettingsWithFlags(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	if flagRoot != "" {
		settings.ProjectRoot = flagRoot
	}
	if flagDB != "" {
		settings.DBPath = flagDB
	}
	if flagWorkers > 0 {
		settings.Workers = flagWorkers
	}
	if err := appconfig.ValidateSettings(settings); err != nil {
		return nil, nil, err
	}
	logger := appconfig.NewLogger(settings)
	return settings, logger, nil
}
