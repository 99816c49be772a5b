package appconfig

import (
	"os"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	_ = os.Unsetenv("CODEGRAPH_WORKERS")
	_ = os.Unsetenv("CODEGRAPH_LOG_LEVEL")

	settings, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "info", settings.LogLevel)
	assert.Equal(t, "text", settings.LogFormat)
	assert.NotEmpty(t, settings.ProjectRoot)
	assert.Contains(t, settings.DBPath, ".codegraph")
	assert.GreaterOrEqual(t, settings.Workers, 1)
	assert.Contains(t, settings.IgnoreDirs, ".git")
	assert.Contains(t, settings.IgnoreDirs, "node_modules")
}

func TestLoadSettings_EnvVars(t *testing.T) {
	t.Setenv("CODEGRAPH_WORKERS", "4")
	t.Setenv("CODEGRAPH_LOG_LEVEL", "debug")

	settings, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, 4, settings.Workers)
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestLoadSettings_IgnoreDirsEnvVar(t *testing.T) {
	t.Setenv("CODEGRAPH_IGNORE_DIRS", "foo, bar,baz")

	settings, err := LoadSettings()
	require.NoError(t, err)

	require.Len(t, settings.IgnoreDirs, 3)
	assert.Equal(t, "foo", settings.IgnoreDirs[0])
	assert.Equal(t, "bar", settings.IgnoreDirs[1])
	assert.Equal(t, "baz", settings.IgnoreDirs[2])
}

func TestLoadSettingsWithFlags_FlagOverridesEnv(t *testing.T) {
	t.Setenv("CODEGRAPH_WORKERS", "4")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("root", "", "")
	flags.String("db", "", "")
	flags.Int("workers", 8, "")
	flags.String("log-level", "info", "")
	flags.String("log-format", "text", "")
	require.NoError(t, flags.Set("workers", "8"))

	settings, err := LoadSettingsWithFlags(flags)
	require.NoError(t, err)
	assert.Equal(t, 8, settings.Workers)
}

func TestValidateSettings_RejectsBadWorkerCount(t *testing.T) {
	s := &Settings{Workers: 0, LogLevel: "info", LogFormat: "text"}
	assert.Error(t, ValidateSettings(s))
}

func TestValidateSettings_RejectsBadLogFormat(t *testing.T) {
	s := &Settings{Workers: 1, LogLevel: "info", LogFormat: "xml"}
	assert.Error(t, ValidateSettings(s))
}

func TestValidateSettings_RejectsBadLogLevel(t *testing.T) {
	s := &Settings{Workers: 1, LogLevel: "verbose", LogFormat: "text"}
	assert.Error(t, ValidateSettings(s))
}

func TestValidateSettings_AcceptsDefaults(t *testing.T) {
	s := &Settings{Workers: 2, LogLevel: "warn", LogFormat: "json"}
	assert.NoError(t, ValidateSettings(s))
}
