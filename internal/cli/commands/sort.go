package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leapstack-labs/adboard/internal/cli/output"
	"github.com/leapstack-labs/adboard/pkg/sortable"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// SortOptions holds options for the sort command.
type SortOptions struct {
	Column     string
	Direction  string
	SalesSpend bool
	Columns    []string
}

// NewSortCommand creates the sort command.
func NewSortCommand() *cobra.Command {
	opts := &SortOptions{}

	cmd := &cobra.Command{
		Use:   "sort <file>",
		Short: "Sort a dataset of records",
		Long: `Sort a JSON or YAML array of records with the dashboard's sort rules.

Nulls sort first ascending and last descending, numbers compare numerically,
everything else compares as case-insensitive text. Records with equal keys
keep their input order. Use - to read from stdin.`,
		Example: `  # Sort by spend, highest first
  adboard sort campaigns.json --column spend --direction desc

  # Rank by sales, then spend
  adboard sort campaigns.yaml --sales-spend

  # Read from stdin and write JSON
  cat campaigns.json | adboard sort - --column name -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Column, "column", "", "Field to sort by")
	cmd.Flags().StringVar(&opts.Direction, "direction", string(sortable.Ascending), "Sort direction (asc|desc|none)")
	cmd.Flags().BoolVar(&opts.SalesSpend, "sales-spend", false, "Rank by sales then spend, both descending")
	cmd.Flags().StringSliceVar(&opts.Columns, "columns", nil, "Columns to display (default: all fields)")
	cmd.MarkFlagsMutuallyExclusive("column", "sales-spend")

	_ = cmd.RegisterFlagCompletionFunc("direction", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"asc", "desc", "none"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runSort(cmd *cobra.Command, path string, opts *SortOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	if err := requireColumnForDirection(cmd, opts.Column); err != nil {
		return err
	}

	rows, err := loadRows(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	var sorted []sortable.Row
	if opts.SalesSpend {
		sorted = sortable.SortBySalesThenSpend(rows)
	} else {
		cfg, err := sortConfig(opts.Column, opts.Direction)
		if err != nil {
			return err
		}
		sorted = sortable.Sort(rows, cfg)
	}
	cmdCtx.Logger.Debug("sorted dataset", "path", path, "rows", len(sorted))

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(sorted)
	}

	columns := opts.Columns
	if len(columns) == 0 {
		columns = rowColumns(sorted)
	}
	data := output.TableData{Headers: columns}
	for _, row := range sorted {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = formatValue(row[c])
		}
		data.Rows = append(data.Rows, cells)
	}
	r.Table(data)
	return nil
}

// requireColumnForDirection rejects an explicit --direction that has no
// --column to apply to.
func requireColumnForDirection(cmd *cobra.Command, column string) error {
	if column == "" && cmd.Flags().Changed("direction") {
		return errors.New("--direction requires --column")
	}
	return nil
}

// sortConfig builds a sort config from --column and --direction. No column
// means the input order is kept.
func sortConfig(column, direction string) (*sortable.Config, error) {
	if column == "" {
		return nil, nil
	}
	dir, err := sortable.ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	if !dir.Active() {
		return nil, nil
	}
	return &sortable.Config{Column: column, Direction: dir}, nil
}

// loadRows reads a JSON or YAML array of objects. JSON numbers are kept as
// json.Number so integers of any size compare numerically.
func loadRows(stdin io.Reader, path string) ([]sortable.Row, error) {
	var (
		content []byte
		err     error
	)
	if path == "-" {
		content, err = io.ReadAll(stdin)
	} else {
		content, err = os.ReadFile(path) //nolint:gosec // path is a user-supplied input file
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw []map[string]any
	if isJSON(path, content) {
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.UseNumber()
		err = dec.Decode(&raw)
	} else {
		err = yaml.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	rows := make([]sortable.Row, 0, len(raw))
	for i, m := range raw {
		if m == nil {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		rows = append(rows, sortable.Row(m))
	}
	return rows, nil
}

func isJSON(path string, content []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return true
	case ".yaml", ".yml":
		return false
	}
	trimmed := bytes.TrimSpace(content)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// rowColumns returns every field name across rows, sorted.
func rowColumns(rows []sortable.Row) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	slices.Sort(cols)
	return cols
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}
