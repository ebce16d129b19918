/*
Package config loads settings and argument files for fmtstring.

# Settings

Config wraps a decoded YAML or JSON mapping and returns typed values with
defaults, so callers never type-assert:

	cfg, err := config.FromFile("fmtstring.yaml")
	if err != nil {
	    return err
	}

	catalogPath := cfg.String(config.KeyCatalog, "")
	verbose := cfg.Bool(config.KeyVerbose, false)

A config file may carry an inline argument block under "args":

	catalog: ./templates.db
	args:
	  name: John
	  age: 25

# Argument Files

LoadArgs and ParseArgs turn a document into a fmtstring.Lookup. The shape
of the top-level node decides the addressing mode:

	# positional: {0} {1}
	- John
	- 25

	# named: {name} {age}
	name: John
	age: 25

Scalars at the top level are rejected with ErrArgsShape. An empty file
yields an empty Lookup, so every placeholder renders as the empty string.
*/
package config
