// Package appconfig resolves runtime settings for the codegraph CLI from
// defaults, an optional config file, environment variables, and CLI flags,
// in that ascending priority order.
package appconfig

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings holds the resolved configuration for one CLI invocation.
type Settings struct {
	ProjectRoot string   `mapstructure:"project_root" yaml:"project_root"`
	DBPath      string   `mapstructure:"db_path" yaml:"db_path"`
	Workers     int      `mapstructure:"workers" yaml:"workers"`
	LogLevel    string   `mapstructure:"log_level" yaml:"log_level"`
	LogFormat   string   `mapstructure:"log_format" yaml:"log_format"`
	IgnoreDirs  []string `mapstructure:"ignore_dirs" yaml:"ignore_dirs"`
}

// LoadSettings loads settings from environment variables, an optional
// .codegraph.yaml config file, and defaults.
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > config file > defaults.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault("project_root", defaultProjectRoot())
	v.SetDefault("db_path", "")
	v.SetDefault("workers", defaultWorkers())
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("ignore_dirs", []string{
		".git", "node_modules", ".venv", "__pycache__", "vendor",
		".idea", ".vscode", "dist", "build", ".codegraph", ".next", "target",
	})

	v.SetEnvPrefix("CODEGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("project_root", "CODEGRAPH_PROJECT_ROOT")
	_ = v.BindEnv("db_path", "CODEGRAPH_DB_PATH")
	_ = v.BindEnv("workers", "CODEGRAPH_WORKERS")
	_ = v.BindEnv("log_level", "CODEGRAPH_LOG_LEVEL")
	_ = v.BindEnv("log_format", "CODEGRAPH_LOG_FORMAT")
	_ = v.BindEnv("ignore_dirs", "CODEGRAPH_IGNORE_DIRS")

	if flags != nil {
		_ = v.BindPFlag("project_root", flags.Lookup("root"))
		_ = v.BindPFlag("db_path", flags.Lookup("db"))
		_ = v.BindPFlag("workers", flags.Lookup("workers"))
		_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
		_ = v.BindPFlag("log_format", flags.Lookup("log-format"))
	}

	v.SetConfigName(".codegraph")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // no config file is not an error

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	ignoreEnv := os.Getenv("CODEGRAPH_IGNORE_DIRS")
	if ignoreEnv != "" {
		if len(settings.IgnoreDirs) == 0 || (len(settings.IgnoreDirs) == 1 && strings.Contains(settings.IgnoreDirs[0], ",")) {
			settings.IgnoreDirs = strings.Split(ignoreEnv, ",")
		}
	}
	for i := range settings.IgnoreDirs {
		settings.IgnoreDirs[i] = strings.TrimSpace(settings.IgnoreDirs[i])
	}

	settings.ProjectRoot = expandHomeDir(settings.ProjectRoot)
	if settings.DBPath == "" {
		settings.DBPath = filepath.Join(settings.ProjectRoot, ".codegraph", "graph.db")
	}

	return &settings, nil
}

func defaultProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// ValidateSettings checks for values that would make extraction unable to run.
func ValidateSettings(s *Settings) error {
	if s.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return errors.New("log-format must be 'text' or 'json', got: " + s.LogFormat)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log-level must be one of debug/info/warn/error, got: " + s.LogLevel)
	}
	return nil
}
