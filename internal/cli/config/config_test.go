package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/adboard/internal/source"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.BoolP("verbose", "v", false, "")
	flags.StringP("output", "o", "", "")
	flags.String("state", "", "")
	flags.String("profile", "", "")
	flags.String("source-type", "", "")
	flags.String("fixture", "", "")
	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultStateFile, cfg.StatePath)
	assert.Equal(t, DefaultProfile, cfg.Profile)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, source.TypeFixture, cfg.Source.Type)
	assert.Equal(t, "require", cfg.Source.SSLMode)
	assert.Equal(t, DefaultPort, cfg.UI.Port)
	assert.Equal(t, DefaultShutdownTimeout, cfg.UI.ShutdownTimeout)
	assert.False(t, cfg.Verbose)
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	path := writeConfig(t, `
profile: analyst
output: json
state_path: state/prefs.db
source:
  type: fixture
  fixture: data/demo.yaml
ui:
  port: 9000
  watch: true
  shutdown_timeout: 15s
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	dir := filepath.Dir(path)
	assert.Equal(t, path, GetConfigFileUsed())
	assert.Equal(t, "analyst", cfg.Profile)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, filepath.Join(dir, "state", "prefs.db"), cfg.StatePath, "relative to the config file")
	assert.Equal(t, filepath.Join(dir, "data", "demo.yaml"), cfg.Source.Fixture)
	assert.Equal(t, 9000, cfg.UI.Port)
	assert.True(t, cfg.UI.Watch)
	assert.Equal(t, 15*time.Second, cfg.UI.ShutdownTimeout)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	path := writeConfig(t, `
ui:
  port: 9000
source:
  type: fixture
`)
	t.Setenv("ADBOARD_UI__PORT", "9100")
	t.Setenv("ADBOARD_UI__SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("ADBOARD_SOURCE__TYPE", "postgres")
	t.Setenv("ADBOARD_SOURCE__HOST", "db.internal")
	t.Setenv("ADBOARD_PROFILE", "ops")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.UI.Port)
	assert.Equal(t, 2*time.Second, cfg.UI.ShutdownTimeout)
	assert.Equal(t, source.TypePostgres, cfg.Source.Type)
	assert.Equal(t, "db.internal", cfg.Source.Host)
	assert.Equal(t, "ops", cfg.Profile)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	t.Setenv("ADBOARD_OUTPUT", "markdown")
	t.Setenv("ADBOARD_PROFILE", "ops")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"-o", "csv", "--state", "/tmp/adboard.db", "--fixture", "demo.yaml", "-v"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.OutputFormat)
	assert.Equal(t, "/tmp/adboard.db", cfg.StatePath)
	assert.Equal(t, "demo.yaml", cfg.Source.Fixture)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "ops", cfg.Profile, "unset flags do not override env")
}

func TestLoadConfig_ExpandsSecrets(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	t.Setenv("ADS_DB_PASSWORD", "s3cret")
	path := writeConfig(t, `
source:
  type: postgres
  host: localhost
  password: ${ADS_DB_PASSWORD}
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Source.Password)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		errSubstr string
	}{
		{
			name:      "unknown source type",
			content:   "source:\n  type: mysql\n",
			errSubstr: `unsupported source type "mysql"`,
		},
		{
			name:      "postgres without host",
			content:   "source:\n  type: postgres\n",
			errSubstr: "source.host or source.dsn is required",
		},
		{
			name:      "port out of range",
			content:   "ui:\n  port: 70000\n",
			errSubstr: "ui.port must be between 1 and 65535",
		},
		{
			name:      "bad output",
			content:   "output: yaml\n",
			errSubstr: "unknown output format",
		},
		{
			name:      "empty session secret",
			content:   "ui:\n  session_secret: \"\"\n",
			errSubstr: "ui.session_secret must not be empty",
		},
		{
			name:      "bad duration",
			content:   "ui:\n  shutdown_timeout: soon\n",
			errSubstr: "unable to decode config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ResetConfig()
			t.Cleanup(ResetConfig)

			_, err := LoadConfig(writeConfig(t, tt.content), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()
	t.Cleanup(ResetConfig)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := slog.New(slog.DiscardHandler)
	ctx := context.WithValue(context.Background(), LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "ui.shutdown_timeout", envKey("ADBOARD_UI__SHUTDOWN_TIMEOUT"))
	assert.Equal(t, "state_path", envKey("ADBOARD_STATE_PATH"))
}
