package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/corey/codegraph/internal/registry"
)

var flagConfigYAML bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved configuration",
	Long:  "Shows the project root, database path, worker count, and supported languages. Does not extract anything.",
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigYAML, "yaml", false, "print resolved settings as a .codegraph.yaml document instead of a summary")
}

func runConfig(cmd *cobra.Command, args []string) error {
	settings, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if flagConfigYAML {
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(settings)
	}

	dbStatus := fmt.Sprintf("%s✗ not found%s", colorYellow, colorReset)
	if _, err := os.Stat(settings.DBPath); err == nil {
		dbStatus = fmt.Sprintf("%s✓ exists%s", colorGreen, colorReset)
	}

	fmt.Printf("%scodegraph config%s\n", colorBold, colorReset)
	fmt.Printf("  Root:       %s\n", settings.ProjectRoot)
	fmt.Printf("  DB:         %s (%s)\n", settings.DBPath, dbStatus)
	fmt.Printf("  Workers:    %d\n", settings.Workers)
	fmt.Printf("  Log level:  %s\n", settings.LogLevel)
	fmt.Printf("  Log format: %s\n", settings.LogFormat)
	fmt.Printf("  Ignored:    %v\n", settings.IgnoreDirs)

	fmt.Printf("\n%ssupported languages%s\n", colorBold, colorReset)
	for _, lang := range registry.SupportedLanguages() {
		fmt.Printf("  %s\n", lang)
	}

	return nil
}
