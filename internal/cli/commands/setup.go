// Package commands implements the adboard CLI commands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/adboard/internal/cli/config"
	"github.com/leapstack-labs/adboard/internal/cli/output"
	"github.com/leapstack-labs/adboard/internal/prefs"
	"github.com/leapstack-labs/adboard/internal/source"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// OpenSource opens the configured data source.
func (c *CommandContext) OpenSource(ctx context.Context) (source.Source, error) {
	src, err := source.Open(ctx, c.Cfg.Source, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s source: %w", sourceType(c.Cfg), err)
	}
	return src, nil
}

// OpenPrefs opens the preference store, creating its directory if needed.
func (c *CommandContext) OpenPrefs() (*prefs.SQLiteStore, error) {
	if dir := filepath.Dir(c.Cfg.StatePath); c.Cfg.StatePath != ":memory:" && dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	store := prefs.NewSQLiteStore()
	if err := store.Open(c.Cfg.StatePath); err != nil {
		return nil, err
	}
	c.Logger.Debug("opened preference store", slog.String("path", c.Cfg.StatePath))
	return store, nil
}

// getConfig returns the current configuration, or defaults when none was
// loaded (for example when a command runs outside the root command).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		StatePath:    config.DefaultStateFile,
		Profile:      config.DefaultProfile,
		OutputFormat: config.DefaultOutput,
		Source:       source.Config{Type: source.TypeFixture},
		UI: config.UIConfig{
			Port:            config.DefaultPort,
			SessionSecret:   config.DefaultSessionSecret,
			ShutdownTimeout: config.DefaultShutdownTimeout,
		},
	}
}

func sourceType(cfg *config.Config) string {
	if cfg.Source.Type == "" {
		return source.TypeFixture
	}
	return cfg.Source.Type
}
