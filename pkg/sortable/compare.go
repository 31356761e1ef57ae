package sortable

import (
	"cmp"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// key is a pre-computed comparison key for one record.
type key struct {
	null  bool
	num   float64
	isNum bool
	str   string
}

// keyer builds keys. It owns a case folder, so it must not be shared
// between goroutines.
type keyer struct {
	fold cases.Caser
}

func newKeyer() *keyer {
	return &keyer{fold: cases.Fold()}
}

func (k *keyer) key(v any, ok bool) key {
	if !ok || v == nil {
		return key{null: true}
	}
	out := key{str: k.fold.String(stringify(v))}
	out.num, out.isNum = toNumber(v)
	return out
}

// compareKeys orders a against b under dir.
func compareKeys(a, b key, dir Direction) int {
	var c int
	switch {
	case a.null && b.null:
		return 0
	case a.null:
		c = -1
	case b.null:
		c = 1
	case a.isNum && b.isNum:
		c = cmp.Compare(a.num, b.num)
	default:
		c = strings.Compare(a.str, b.str)
	}
	return c * dir.sign()
}

// Compare orders two field values under dir using the package rules.
// Pass nil for a missing field.
func Compare(a, b any, dir Direction) int {
	k := newKeyer()
	return compareKeys(k.key(a, true), k.key(b, true), dir)
}

// toNumber reports whether v holds a number and returns it as float64.
// Strings are never numeric, even when they look like numbers.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
