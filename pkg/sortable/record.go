package sortable

// Record is a single row that can be indexed by field name.
// ok reports whether the field exists; a missing field and a nil value are
// both treated as null.
type Record interface {
	Field(name string) (value any, ok bool)
}

// Row is a schemaless Record backed by a map.
type Row map[string]any

// Field implements Record.
func (r Row) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}
