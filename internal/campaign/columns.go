package campaign

// Column describes one sortable table column.
type Column struct {
	Field   string
	Label   string
	Numeric bool
}

var metricColumns = []Column{
	{Field: FieldSpend, Label: "Spend", Numeric: true},
	{Field: FieldSales, Label: "Sales", Numeric: true},
	{Field: FieldROAS, Label: "ROAS", Numeric: true},
	{Field: FieldImpressions, Label: "Impressions", Numeric: true},
	{Field: FieldClicks, Label: "Clicks", Numeric: true},
	{Field: FieldCTR, Label: "CTR", Numeric: true},
}

// Columns returns the columns displayed for level, in display order.
func Columns(level Level) []Column {
	cols := []Column{
		{Field: FieldName, Label: "Name"},
		{Field: FieldStatus, Label: "Status"},
	}
	if level != LevelAccounts && level != LevelAds {
		cols = append(cols, Column{Field: FieldDailyBudget, Label: "Daily budget", Numeric: true})
	}
	cols = append(cols, metricColumns...)
	return append(cols, Column{Field: FieldUpdatedAt, Label: "Updated"})
}

// HasColumn reports whether field is a displayed column of level.
func HasColumn(level Level, field string) bool {
	for _, c := range Columns(level) {
		if c.Field == field {
			return true
		}
	}
	return false
}
