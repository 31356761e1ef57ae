package sortable

import (
	"fmt"
	"strings"
)

// Direction is the order applied to the active column.
type Direction string

// Directions.
const (
	None       Direction = "none"
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection converts user input into a Direction.
// Accepted values are asc, ascending, desc, descending, none and the empty
// string (none), case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	case "", "none":
		return None, nil
	default:
		return None, fmt.Errorf("invalid sort direction %q (want asc, desc or none)", s)
	}
}

// String returns the canonical short form.
func (d Direction) String() string {
	if d == "" {
		return string(None)
	}
	return string(d)
}

// sign is +1 for ascending and -1 for descending.
func (d Direction) sign() int {
	if d == Descending {
		return -1
	}
	return 1
}

// Active reports whether d orders anything.
func (d Direction) Active() bool {
	return d == Ascending || d == Descending
}
