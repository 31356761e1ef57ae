// Package sortable orders datasets of loosely typed records by a single
// column and tracks the three-state column sort used by dashboard tables.
//
// A dataset is any slice whose elements can be indexed by field name (see
// Record). Sorting never mutates its input: it returns a new slice, or the
// input itself when no sort is active. Ties keep their input order.
//
// Comparison rules for a pair of values at the active column:
//
//   - both null (nil or absent): equal
//   - one null: null first when ascending, last when descending
//   - both numeric: numeric order
//   - otherwise: case-insensitive order of the stringified values
//
// Descending flips the sign of every rule above.
package sortable
