// Package common provides shared types and utilities for UI features.
package common

import (
	"github.com/leapstack-labs/adboard/internal/campaign"
	"github.com/leapstack-labs/adboard/pkg/sortable"
)

// FormatCell renders the value of column for e.
func FormatCell(e campaign.Entity, column string) string {
	return campaign.FormatField(e, column)
}

// SortIndicator is the arrow shown next to a column header.
func SortIndicator(d sortable.Direction) string {
	switch d {
	case sortable.Ascending:
		return "▲"
	case sortable.Descending:
		return "▼"
	default:
		return ""
	}
}

// AriaSort is the aria-sort attribute value for a column header.
func AriaSort(d sortable.Direction) string {
	switch d {
	case sortable.Ascending:
		return "ascending"
	case sortable.Descending:
		return "descending"
	default:
		return "none"
	}
}
