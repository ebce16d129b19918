package fmtstring

import "strings"

// Stats reports what a single scan did with the placeholders it found.
type Stats struct {
	// Placeholders is the number of candidates that closed with a valid key.
	Placeholders int

	// Substituted counts placeholders whose key was found in the lookup.
	Substituted int

	// Missing counts placeholders whose key was absent and became "".
	Missing int

	// Escaped counts doubled-brace placeholders emitted as their raw key.
	Escaped int
}

// noCandidate marks the cursor as idle.
const noCandidate = -1

// scan substitutes placeholders in template using lookup in one forward pass.
//
// Indices are byte offsets. The braces are ASCII, so a byte check is enough
// for the one-character lookahead, and keys are sliced on rune boundaries.
func scan(template string, lookup Lookup, stats *Stats) string {
	var out strings.Builder
	out.Grow(len(template))

	sliceStart := 0
	candidate := noCandidate
	escaped := false

	for i, r := range template {
		if candidate == noCandidate {
			if r == '{' {
				candidate = i
			}
			continue
		}

		switch {
		case r == '}':
			if candidate+1 == i {
				// Empty key: left pending, emitted by a later flush.
				candidate = noCandidate
				continue
			}

			if sliceStart < candidate {
				out.WriteString(template[sliceStart:candidate])
			}

			key := template[candidate+1 : i]
			stats.Placeholders++
			if escaped && i+1 < len(template) && template[i+1] == '}' {
				out.WriteString(key)
				stats.Escaped++
			} else if v, ok := lookup[key]; ok {
				out.WriteString(display(v))
				stats.Substituted++
			} else {
				stats.Missing++
			}

			escaped = false
			candidate = noCandidate
			sliceStart = i + 1

		case r == '{':
			candidate = i
			escaped = true

		case isWhitespace(r):
			candidate = noCandidate
			escaped = false
		}
	}

	if sliceStart < len(template) {
		out.WriteString(template[sliceStart:])
	}

	return out.String()
}

// isWhitespace reports whether r invalidates an open placeholder.
// The set covers the Unicode space separators, line and paragraph
// separators, the ASCII control spaces and the byte order mark.
func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r',
		'\u00a0', '\u1680',
		'\u2000', '\u2001', '\u2002', '\u2003', '\u2004', '\u2005',
		'\u2006', '\u2007', '\u2008', '\u2009', '\u200a',
		'\u2028', '\u2029', '\u202f', '\u205f', '\u3000',
		'\ufeff':
		return true
	}
	return false
}
