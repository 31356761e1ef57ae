package campaign

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Null is how missing values are displayed.
const Null = "–"

var printer = message.NewPrinter(language.English)

// FormatMoney renders an amount with two decimals and thousands separators.
func FormatMoney(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(v int64) string {
	return printer.Sprintf("%d", v)
}

// FormatRatio renders a ratio such as ROAS with two decimals.
func FormatRatio(v float64) string {
	return printer.Sprintf("%.2fx", v)
}

// FormatPercent renders a fraction as a percentage.
func FormatPercent(v float64) string {
	return printer.Sprintf("%.2f%%", v*100)
}

// FormatField renders the value of column for e. Nulls render as Null.
func FormatField(e Entity, column string) string {
	v, _ := e.Field(column)
	if v == nil {
		return Null
	}
	switch column {
	case FieldSpend, FieldSales, FieldDailyBudget:
		return FormatMoney(v.(float64))
	case FieldImpressions, FieldClicks:
		return FormatCount(v.(int64))
	case FieldROAS:
		return FormatRatio(v.(float64))
	case FieldCTR:
		return FormatPercent(v.(float64))
	default:
		s, _ := v.(string)
		return s
	}
}
