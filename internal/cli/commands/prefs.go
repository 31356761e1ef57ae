package commands

import (
	"fmt"
	"maps"
	"slices"

	"github.com/leapstack-labs/adboard/internal/campaign"
	"github.com/leapstack-labs/adboard/internal/cli/output"
	"github.com/leapstack-labs/adboard/internal/prefs"
	"github.com/leapstack-labs/adboard/pkg/sortable"
	"github.com/spf13/cobra"
)

// NewPrefsCommand creates the prefs command and its subcommands.
func NewPrefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect and change stored preferences",
		Long: `Inspect and change the preferences stored for a profile.

The CLI uses the profile named by --profile (default "cli"). Dashboard
browsers each have their own profile; list them with "adboard prefs profiles".`,
	}

	cmd.AddCommand(
		newPrefsShowCommand(),
		newPrefsEditModeCommand(),
		newPrefsClickCommand(),
		newPrefsResetCommand(),
		newPrefsProfilesCommand(),
	)
	return cmd
}

func newPrefsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the preferences of the current profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPrefs(cmd, func(cmdCtx *CommandContext, p *prefs.Preferences) error {
				return renderSnapshot(cmdCtx.Renderer, p.Snapshot())
			})
		},
	}
}

func newPrefsEditModeCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "edit-mode on|off",
		Short:     "Turn edit mode on or off",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			on := args[0] == "on"
			return withPrefs(cmd, func(cmdCtx *CommandContext, p *prefs.Preferences) error {
				if err := p.SetEditMode(cmd.Context(), on); err != nil {
					return err
				}
				cmdCtx.Renderer.Success(fmt.Sprintf("edit mode %s for %s", args[0], p.Profile()))
				return nil
			})
		},
	}
}

func newPrefsClickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "click <level> <column>",
		Short: "Advance the stored sort of a level as a header click would",
		Long: `Advance the stored sort of a level exactly like clicking a column header in
the dashboard: unsorted or another column -> ascending -> descending -> unsorted.`,
		Example: `  adboard prefs click campaigns spend`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := campaign.ParseLevel(args[0])
			if err != nil {
				return err
			}
			column := args[1]
			if !campaign.HasColumn(level, column) {
				return fmt.Errorf("unknown column %q for %s", column, level)
			}

			return withPrefs(cmd, func(cmdCtx *CommandContext, p *prefs.Preferences) error {
				next := sortable.Advance(p.Sort(level), column)
				if err := p.SetSort(cmd.Context(), level, next); err != nil {
					return err
				}
				dir := sortable.DirectionOf(next, column)
				if !dir.Active() {
					cmdCtx.Renderer.Success(fmt.Sprintf("%s: sort cleared", level))
					return nil
				}
				cmdCtx.Renderer.Success(fmt.Sprintf("%s: sorted by %s %s", level, column, dir))
				return nil
			})
		},
	}
}

func newPrefsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear every stored preference of the current profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withPrefs(cmd, func(cmdCtx *CommandContext, p *prefs.Preferences) error {
				if err := p.Reset(cmd.Context()); err != nil {
					return err
				}
				cmdCtx.Renderer.Success("preferences reset for " + p.Profile())
				return nil
			})
		},
	}
}

func newPrefsProfilesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List profiles with stored preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			store, err := cmdCtx.OpenPrefs()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			profiles, err := store.Profiles(cmd.Context())
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.EffectiveMode() == output.ModeJSON {
				if profiles == nil {
					profiles = []string{}
				}
				return r.JSON(profiles)
			}
			for _, id := range profiles {
				r.Println(id)
			}
			return nil
		},
	}
}

// withPrefs opens the store, loads the configured profile and runs fn.
func withPrefs(cmd *cobra.Command, fn func(*CommandContext, *prefs.Preferences) error) error {
	cmdCtx := NewCommandContext(cmd)
	store, err := cmdCtx.OpenPrefs()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	p, err := prefs.Load(cmd.Context(), store, cmdCtx.Cfg.Profile, cmdCtx.Logger)
	if err != nil {
		return err
	}
	return fn(cmdCtx, p)
}

func renderSnapshot(r *output.Renderer, s prefs.Snapshot) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(s)
	}

	r.Header(1, "Preferences: "+s.Profile)
	r.Println(output.FormatKeyValue("edit_mode", s.EditMode))
	r.Println(output.FormatKeyValue("filter.status", orNone(s.Filter.Status)))
	r.Println(output.FormatKeyValue("filter.search", orNone(s.Filter.Search)))

	levels := slices.Sorted(maps.Keys(s.Sorts))
	if len(levels) == 0 {
		r.Println(output.FormatKeyValue("sort", "none"))
		return nil
	}
	for _, level := range levels {
		cfg := s.Sorts[level]
		r.Println(output.FormatKeyValue("sort."+string(level), cfg.Column+" "+cfg.Direction.String()))
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
