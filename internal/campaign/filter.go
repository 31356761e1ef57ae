package campaign

import "strings"

// Filter narrows a table before it is sorted.
// Zero values match everything.
type Filter struct {
	Status string `json:"status,omitempty"`
	Search string `json:"search,omitempty"`
}

// IsZero reports whether f matches everything.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Status) == "" && strings.TrimSpace(f.Search) == ""
}

// Match reports whether e passes f.
func (f Filter) Match(e Entity) bool {
	if s := strings.TrimSpace(f.Status); s != "" && !strings.EqualFold(e.Status, s) {
		return false
	}
	if q := strings.TrimSpace(f.Search); q != "" &&
		!strings.Contains(strings.ToLower(e.Name), strings.ToLower(q)) {
		return false
	}
	return true
}

// Apply returns the entities matching f, preserving order.
func (f Filter) Apply(entities []Entity) []Entity {
	if f.IsZero() {
		return entities
	}
	out := make([]Entity, 0, len(entities))
	for _, e := range entities {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// Totals sums the metrics of entities.
func Totals(entities []Entity) Entity {
	var t Entity
	t.Name = "Total"
	for _, e := range entities {
		t.Spend += e.Spend
		t.Sales += e.Sales
		t.Impressions += e.Impressions
		t.Clicks += e.Clicks
	}
	return t
}
