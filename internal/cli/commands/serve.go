package commands

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/leapstack-labs/adboard/internal/ui"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port  int
	Watch bool
	Dev   bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard web server",
		Long: `Start a local web server with sortable account, campaign, ad set and ad
tables.

Each browser gets its own profile; its edit mode, filters and column sorts
are stored in the preference database (--state) and restored on the next visit.`,
		Example: `  # Serve the configured source on the default port
  adboard serve

  # Serve a fixture file and reload it when it changes
  adboard serve --fixture demo.yaml --watch

  # Start on a custom port
  adboard serve --port 3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Reload the fixture file when it changes")
	cmd.Flags().BoolVar(&opts.Dev, "dev", false, "Enable the browser hot reload endpoint")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	logger := cmdCtx.Logger

	// CLI flags override config file
	uiCfg := cfg.UI
	if cmd.Flags().Changed("port") {
		uiCfg.Port = opts.Port
	}
	if cmd.Flags().Changed("watch") {
		uiCfg.Watch = opts.Watch
	}
	if cmd.Flags().Changed("dev") {
		uiCfg.Dev = opts.Dev
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := cmdCtx.OpenSource(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	store, err := cmdCtx.OpenPrefs()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	server := ui.NewServer(ui.Config{
		Source:          src,
		Prefs:           store,
		Port:            uiCfg.Port,
		Watch:           uiCfg.Watch,
		Dev:             uiCfg.Dev,
		SessionSecret:   uiCfg.SessionSecret,
		ShutdownTimeout: uiCfg.ShutdownTimeout,
		Logger:          logger,
	})

	r := cmdCtx.Renderer
	r.Printf("Starting dashboard on http://localhost:%d\n", uiCfg.Port)
	r.Println("Press Ctrl+C to stop")

	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("dashboard server: %w", err)
	}
	return nil
}
