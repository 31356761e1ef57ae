// Package dashboard provides the sortable entity tables of the UI.
package dashboard

import (
	"html/template"

	"github.com/leapstack-labs/adboard/internal/campaign"
	"github.com/leapstack-labs/adboard/internal/ui/features/common"
)

// FilterSignals are the filter inputs sent by the frontend.
type FilterSignals struct {
	Status string `json:"status"`
	Search string `json:"search"`
}

// PageView holds everything rendered on a full page load.
type PageView struct {
	Title      string
	Nav        common.NavData
	Table      TableView
	UpdatesURL string
	Stylesheet string
	Signals    template.JS
}

// TableView is the table fragment patched on every change.
type TableView struct {
	Level     campaign.Level
	Title     string
	ParentID  string
	Headers   []HeaderView
	Rows      []RowView
	Totals    []CellView
	Count     int
	SortLabel string
	EditMode  bool

	ResetAction    template.JS
	FilterAction   template.JS
	EditModeAction template.JS
}

// HeaderView is one clickable column header.
type HeaderView struct {
	Field     string
	Label     string
	Numeric   bool
	Indicator string
	AriaSort  string
	Action    template.JS
}

// RowView is one table row.
type RowView struct {
	ID     string
	Href   string
	Status string
	Cells  []CellView
}

// CellView is one rendered value.
type CellView struct {
	Text    string
	Numeric bool
}
