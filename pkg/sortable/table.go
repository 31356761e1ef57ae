package sortable

// Table holds the sort state of one on-screen table and caches the last
// sorted result.
//
// A Table is not safe for concurrent use; each view owns its own.
type Table[R Record] struct {
	def *Config
	cur *Config

	// memo of the last Apply call
	src    []R
	srcCfg *Config
	out    []R
	cached bool
}

// NewTable creates a Table whose initial and reset state is def.
func NewTable[R Record](def *Config) *Table[R] {
	return &Table[R]{def: def.Clone(), cur: def.Clone()}
}

// Click advances the sort state for column and returns the new config.
func (t *Table[R]) Click(column string) *Config {
	t.cur = Advance(t.cur, column)
	return t.cur.Clone()
}

// Reset restores the default config.
func (t *Table[R]) Reset() *Config {
	t.cur = Reset(t.def)
	return t.cur.Clone()
}

// SetConfig replaces the current config, e.g. with a persisted one.
func (t *Table[R]) SetConfig(cfg *Config) {
	t.cur = cfg.Clone()
}

// Config returns a copy of the current config, or nil when unsorted.
func (t *Table[R]) Config() *Config {
	if !t.cur.Active() {
		return nil
	}
	return t.cur.Clone()
}

// Direction returns the direction shown for column.
func (t *Table[R]) Direction(column string) Direction {
	return DirectionOf(t.cur, column)
}

// Apply sorts data with the current config. Repeated calls with the same
// slice and an unchanged config return the cached result.
func (t *Table[R]) Apply(data []R) []R {
	if t.cached && sameSlice(t.src, data) && t.srcCfg.Equal(t.cur) {
		return t.out
	}
	t.out = Sort(data, t.cur)
	t.src = data
	t.srcCfg = t.cur.Clone()
	t.cached = true
	return t.out
}

func sameSlice[R any](a, b []R) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return (a == nil) == (b == nil)
	}
	return &a[0] == &b[0]
}
