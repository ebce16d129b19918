package fmtstring

import (
	"maps"
	"strconv"
)

// Lookup maps placeholder keys to values.
//
// A nil Lookup is valid and behaves as an empty one. A Lookup must not be
// modified while a Format call that uses it is running.
type Lookup map[string]any

// Positional builds a Lookup addressing values by index: the first value
// is bound to "0", the second to "1", and so on.
//
// Example:
//
//	fmtstring.Format("{0}x{0} = {1}", fmtstring.Positional(2, 4))
//	// "2x2 = 4"
func Positional(values ...any) Lookup {
	l := make(Lookup, len(values))
	for i, v := range values {
		l[strconv.Itoa(i)] = v
	}
	return l
}

// Named wraps m as a Lookup. The map is used as-is, not copied.
// A nil map yields an empty Lookup.
func Named(m map[string]any) Lookup {
	if m == nil {
		return Lookup{}
	}
	return Lookup(m)
}

// With returns a copy of l with key bound to value. l is not modified.
func (l Lookup) With(key string, value any) Lookup {
	out := make(Lookup, len(l)+1)
	maps.Copy(out, l)
	out[key] = value
	return out
}
