package sortable

// Config is the single active sort instruction of a table.
// A nil *Config means the table is unsorted and keeps its input order.
type Config struct {
	Column    string    `json:"column" yaml:"column"`
	Direction Direction `json:"direction" yaml:"direction"`
}

// Active reports whether cfg orders anything.
func (cfg *Config) Active() bool {
	return cfg != nil && cfg.Column != "" && cfg.Direction.Active()
}

// Clone returns a copy of cfg, or nil.
func (cfg *Config) Clone() *Config {
	if cfg == nil {
		return nil
	}
	c := *cfg
	return &c
}

// Equal reports whether two configs describe the same instruction.
// Inactive configs are all equal to nil.
func (cfg *Config) Equal(other *Config) bool {
	if !cfg.Active() || !other.Active() {
		return cfg.Active() == other.Active()
	}
	return cfg.Column == other.Column && cfg.Direction == other.Direction
}

// Advance returns the config that follows a click on column.
//
// The cycle per column is ascending, then descending, then unsorted (nil).
// Clicking a column other than the active one starts over at ascending.
func Advance(cur *Config, column string) *Config {
	if !cur.Active() || cur.Column != column {
		return &Config{Column: column, Direction: Ascending}
	}
	if cur.Direction == Ascending {
		return &Config{Column: column, Direction: Descending}
	}
	return nil
}

// Reset returns a copy of the caller-supplied default, which may be nil.
func Reset(def *Config) *Config {
	return def.Clone()
}

// DirectionOf returns the direction applied to column under cur, or None
// when column is not the active one.
func DirectionOf(cur *Config, column string) Direction {
	if !cur.Active() || cur.Column != column {
		return None
	}
	return cur.Direction
}
