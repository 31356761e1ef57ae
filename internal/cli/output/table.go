package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableData is a rendered grid of strings. Numeric marks right-aligned
// columns.
type TableData struct {
	Headers []string
	Numeric []bool
	Rows    [][]string
	Footer  []string
}

// Table renders data in the effective mode. JSON callers should encode their
// own values with JSON instead; in JSON mode Table falls back to CSV.
func (r *Renderer) Table(data TableData) {
	t := table.NewWriter()
	t.AppendHeader(toRow(data.Headers))
	for _, row := range data.Rows {
		t.AppendRow(toRow(row))
	}

	var configs []table.ColumnConfig
	for i, numeric := range data.Numeric {
		if numeric {
			configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight, AlignFooter: text.AlignRight})
		}
	}
	t.SetColumnConfigs(configs)

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	style.Format.Footer = text.FormatDefault
	t.SetStyle(style)

	switch r.EffectiveMode() {
	case ModeMarkdown:
		if len(data.Footer) > 0 {
			t.AppendRow(toRow(data.Footer))
		}
		r.Println(t.RenderMarkdown())
	case ModeCSV, ModeJSON:
		r.Println(t.RenderCSV())
	default:
		if len(data.Footer) > 0 {
			t.AppendFooter(toRow(data.Footer))
		}
		r.Println(t.Render())
	}
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
