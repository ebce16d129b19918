/*
Package fmtstring substitutes {key} placeholders in strings.

# Overview

fmtstring replaces {0}, {1}, … with positional values or {name} with named
values in a single left-to-right scan. It never fails: anything that does
not look like a valid placeholder is copied to the output untouched.

# Basic Usage

Positional values are addressed by index:

	out := fmtstring.Format("Hello {0}, you are {1} years old",
	    fmtstring.Positional("John", 25))
	// out: "Hello John, you are 25 years old"

Named values are addressed by key:

	out := fmtstring.Format("{date} : {log}", fmtstring.Named(map[string]any{
	    "date": "2023-12-10",
	    "log":  "My log",
	}))
	// out: "2023-12-10 : My log"

# Placeholder Rules

A placeholder is a '{', a non-empty key, and a '}'. The scanner applies
these rules:

  - Empty keys are literal: "a{}b" stays "a{}b".
  - Whitespace ends a candidate: "{ age }" stays "{ age }". This covers
    tab, newline, no-break space, the U+2000 block, ideographic space, and
    the byte order mark.
  - Unterminated braces are literal: "a{b" stays "a{b".
  - Missing keys become "": "{0}" with no values yields "".
  - Doubled braces escape: "{{age}}" yields "{age}" without substitution.

There are no format specifiers and results are never re-expanded.

# Values

Values are rendered with the first capability they have: Displayer,
fmt.Stringer, error, or a scalar kind (strings, booleans, integers,
floats). nil and values with no textual form render as "".

	type Money struct{ Cents int }

	func (m Money) DisplayText() string {
	    return fmt.Sprintf("$%d.%02d", m.Cents/100, m.Cents%100)
	}

	fmtstring.Format("Total: {0}", fmtstring.Positional(Money{1999}))
	// "Total: $19.99"

# Observability

Create a Formatter to log, measure, and trace format calls:

	f := fmtstring.NewFormatter(
	    fmtstring.WithLogger(logger),
	    fmtstring.WithMetrics(true),
	    fmtstring.WithTracing(true),
	)
	out, stats := f.FormatWithStats(ctx, "{user} has {count} items", lookup)

# Thread Safety

Format and Formatter are safe for concurrent use. A Lookup must not be
modified while a call that uses it is running.
*/
package fmtstring
