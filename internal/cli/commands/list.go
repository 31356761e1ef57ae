package commands

import (
	"fmt"

	"github.com/leapstack-labs/adboard/internal/campaign"
	"github.com/leapstack-labs/adboard/internal/cli/output"
	"github.com/leapstack-labs/adboard/internal/prefs"
	"github.com/leapstack-labs/adboard/pkg/sortable"
	"github.com/spf13/cobra"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	Parent    string
	Column    string
	Direction string
	NoFilter  bool
}

// ListOutput is the JSON shape of the list command.
type ListOutput struct {
	Level    campaign.Level    `json:"level"`
	Parent   string            `json:"parent,omitempty"`
	Sort     *sortable.Config  `json:"sort,omitempty"`
	Filter   *campaign.Filter  `json:"filter,omitempty"`
	Entities []campaign.Entity `json:"entities"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list <level>",
		Short: "List accounts, campaigns, ad sets or ads",
		Long: `Fetch one level from the configured source and print it in the order the
dashboard would show it.

The stored sort and filter of the current profile apply unless --column is
given. Without any column sort, every level except ads is ranked by sales and
then spend.

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --output to override: auto, text, markdown, json, csv`,
		Example: `  # List all accounts
  adboard list accounts

  # Campaigns of one account, highest spend first
  adboard list campaigns --parent acc-1 --column spend --direction desc

  # Ads as JSON
  adboard list ads --parent set-1 -o json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: levelNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Parent, "parent", "", "Only list children of this parent id")
	cmd.Flags().StringVar(&opts.Column, "column", "", "Sort by this column instead of the stored sort")
	cmd.Flags().StringVar(&opts.Direction, "direction", string(sortable.Ascending), "Sort direction for --column (asc|desc)")
	cmd.Flags().BoolVar(&opts.NoFilter, "no-filter", false, "Ignore the stored filter")

	return cmd
}

func runList(cmd *cobra.Command, levelArg string, opts *ListOptions) error {
	cmdCtx := NewCommandContext(cmd)
	ctx := cmd.Context()
	r := cmdCtx.Renderer

	level, err := campaign.ParseLevel(levelArg)
	if err != nil {
		return err
	}
	if err := requireColumnForDirection(cmd, opts.Column); err != nil {
		return err
	}

	store, err := cmdCtx.OpenPrefs()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	p, err := prefs.Load(ctx, store, cmdCtx.Cfg.Profile, cmdCtx.Logger)
	if err != nil {
		return err
	}

	tbl := sortable.NewTable[campaign.Entity](nil)
	tbl.SetConfig(p.Sort(level))
	if opts.Column != "" {
		if !campaign.HasColumn(level, opts.Column) {
			return fmt.Errorf("unknown column %q for %s", opts.Column, level)
		}
		cfg, err := sortConfig(opts.Column, opts.Direction)
		if err != nil {
			return err
		}
		tbl.SetConfig(cfg)
	}

	filter := p.Filter()
	if opts.NoFilter {
		filter = campaign.Filter{}
	}

	src, err := cmdCtx.OpenSource(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	entities, err := src.List(ctx, level, opts.Parent)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", level, err)
	}
	rows := campaign.Arrange(level, entities, filter, tbl)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := ListOutput{Level: level, Parent: opts.Parent, Sort: tbl.Config(), Entities: rows}
		if !filter.IsZero() {
			out.Filter = &filter
		}
		if out.Entities == nil {
			out.Entities = []campaign.Entity{}
		}
		return r.JSON(out)
	case output.ModeCSV:
		r.Table(entityTable(level, rows, false))
		return nil
	default:
		title := level.Title()
		if opts.Parent != "" {
			title += " of " + opts.Parent
		}
		r.Header(1, fmt.Sprintf("%s (%d)", title, len(rows)))
		if cfg := tbl.Config(); cfg != nil {
			r.Println(r.Muted(fmt.Sprintf("sorted by %s %s", cfg.Column, cfg.Direction)))
		}
		if !filter.IsZero() {
			r.Println(r.Muted(fmt.Sprintf("filter: status=%q search=%q", filter.Status, filter.Search)))
		}
		r.Table(entityTable(level, rows, true))
		return nil
	}
}

// entityTable lays rows out in the dashboard's column order.
func entityTable(level campaign.Level, rows []campaign.Entity, withTotals bool) output.TableData {
	cols := campaign.Columns(level)
	data := output.TableData{
		Headers: []string{"ID"},
		Numeric: []bool{false},
	}
	for _, c := range cols {
		data.Headers = append(data.Headers, c.Label)
		data.Numeric = append(data.Numeric, c.Numeric)
	}

	row := func(id string, e campaign.Entity) []string {
		cells := []string{id}
		for _, c := range cols {
			cells = append(cells, campaign.FormatField(e, c.Field))
		}
		return cells
	}
	for _, e := range rows {
		data.Rows = append(data.Rows, row(e.ID, e))
	}
	if withTotals && len(rows) > 0 {
		data.Footer = row("", campaign.Totals(rows))
	}
	return data
}

func levelNames() []string {
	names := make([]string, 0, len(campaign.Levels))
	for _, lv := range campaign.Levels {
		names = append(names, string(lv))
	}
	return names
}
