package sortable

import (
	"cmp"
	"slices"
)

// Sort returns data ordered by cfg.
//
// When cfg is nil or inactive the input slice itself is returned. Otherwise
// the result is a new slice; data is never modified. The sort is stable.
func Sort[R Record](data []R, cfg *Config) []R {
	if !cfg.Active() || len(data) < 2 {
		return data
	}

	k := newKeyer()
	type entry struct {
		rec R
		key key
	}
	entries := make([]entry, len(data))
	for i, rec := range data {
		entries[i] = entry{rec: rec, key: k.key(rec.Field(cfg.Column))}
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		return compareKeys(a.key, b.key, cfg.Direction)
	})

	out := make([]R, len(entries))
	for i, e := range entries {
		out[i] = e.rec
	}
	return out
}

// SortBySalesThenSpend orders data by sales descending, then spend
// descending. Missing or non-numeric values count as 0 and full ties keep
// their input order. data is never modified.
func SortBySalesThenSpend[R Record](data []R) []R {
	out := slices.Clone(data)
	if len(out) < 2 {
		return out
	}
	slices.SortStableFunc(out, func(a, b R) int {
		if c := compareMetric(b, a, "sales"); c != 0 {
			return c
		}
		return compareMetric(b, a, "spend")
	})
	return out
}

func compareMetric[R Record](a, b R, field string) int {
	return cmp.Compare(metric(a, field), metric(b, field))
}

// metric reads a numeric field, defaulting to 0.
func metric(r Record, field string) float64 {
	v, ok := r.Field(field)
	if !ok || v == nil {
		return 0
	}
	n, ok := toNumber(v)
	if !ok {
		return 0
	}
	return n
}
