package campaign

import "github.com/leapstack-labs/adboard/pkg/sortable"

// Arrange filters entities and orders them for display.
//
// An active column sort on tbl wins. Without one, every level except ads
// falls back to the sales-then-spend ranking; ads keep the order the source
// returned. tbl may be nil.
func Arrange(level Level, entities []Entity, f Filter, tbl *sortable.Table[Entity]) []Entity {
	rows := f.Apply(entities)
	if tbl != nil && tbl.Config() != nil {
		return tbl.Apply(rows)
	}
	if level == LevelAds {
		return rows
	}
	return sortable.SortBySalesThenSpend(rows)
}
