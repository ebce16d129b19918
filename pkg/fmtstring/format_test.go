package fmtstring

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFormat_Positional tests {0}, {1}, … substitution.
func TestFormat_Positional(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		args     []any
		expected string
	}{
		{
			name:     "simple sentence",
			input:    "Hello {0}, you are {1} years old",
			args:     []any{"John", 25},
			expected: "Hello John, you are 25 years old",
		},
		{
			name:     "placeholder at start",
			input:    "{0} is {1} years old today",
			args:     []any{"John", 25},
			expected: "John is 25 years old today",
		},
		{
			name:     "out of order",
			input:    "He is {1} years old, his name is {0}",
			args:     []any{"John", 25},
			expected: "He is 25 years old, his name is John",
		},
		{
			name:     "repeated index",
			input:    "{0}x{0} = {1}",
			args:     []any{2, 4},
			expected: "2x2 = 4",
		},
		{
			name:     "adjacent placeholders",
			input:    "{0}{1}{2}{3}",
			args:     []any{0, 1, 2, 3},
			expected: "0123",
		},
		{
			name:     "index beyond values",
			input:    "{0}-{5}",
			args:     []any{"a"},
			expected: "a-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.input, Positional(tt.args...))
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestFormat_Named tests {key} substitution.
func TestFormat_Named(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		vars     map[string]any
		expected string
	}{
		{
			name:     "simple sentence",
			input:    "Hello {name}, you are {age} years old",
			vars:     map[string]any{"name": "John", "age": 25},
			expected: "Hello John, you are 25 years old",
		},
		{
			name:     "placeholder at end",
			input:    "He is {age} years old, his name is {name}",
			vars:     map[string]any{"name": "John", "age": 25},
			expected: "He is 25 years old, his name is John",
		},
		{
			name:     "non-ascii keys",
			input:    "{héllo} {日本}",
			vars:     map[string]any{"héllo": "hi", "日本": "jp"},
			expected: "hi jp",
		},
		{
			name:     "emoji key",
			input:    "[{\U0001F615}]",
			vars:     map[string]any{"\U0001F615": "sad"},
			expected: "[sad]",
		},
		{
			name:     "line feed before placeholder",
			input:    "Hello,\n{name}",
			vars:     map[string]any{"name": "John"},
			expected: "Hello,\nJohn",
		},
		{
			name:     "unicode space before placeholder",
			input:    "Hello,\u2004{name}",
			vars:     map[string]any{"name": "John"},
			expected: "Hello,\u2004John",
		},
		{
			name:     "value is not re-expanded",
			input:    "{a}",
			vars:     map[string]any{"a": "{b}", "b": "nope"},
			expected: "{b}",
		},
		{
			name:     "stray closing braces",
			input:    "}{a}}",
			vars:     map[string]any{"a": 1},
			expected: "}1}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.input, Named(tt.vars))
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestFormat_Escape tests doubled-brace escaping.
func TestFormat_Escape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"doubled braces", "{{k}}", "{k}"},
		{"inside sentence", "{name} is {{age}} years old today", "John is {age} years old today"},
		{"tripled braces", "{{{k}}}", "{{k}}"},
		{"only opening doubled", "{{k}", "{v"},
		{"only closing doubled", "{k}}", "v}"},
		{"doubled empty key", "{{}}", "{{}}"},
		{"benchmark template", "{k}{k} {{k}}", "vv {k}"},
	}

	vars := Named(map[string]any{"k": "v", "name": "John", "age": 25})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.input, vars))
		})
	}
}

// TestFormat_LiteralFallback tests candidates that degrade to literal text.
func TestFormat_LiteralFallback(t *testing.T) {
	vars := Named(map[string]any{"name": "John", "age": 25, "k": 1, "b": 1})

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty key", "a{}b", "a{}b"},
		{"empty key in sentence", "{name} is {} years old today", "John is {} years old today"},
		{"unterminated", "a{b", "a{b"},
		{"unterminated doubled", "{name} is {{ years old today", "John is {{ years old today"},
		{"unterminated at end", "{name}{", "John{"},
		{"spaces around key", "{ k }", "{ k }"},
		{"leading space", "{name} is { age} years old today", "John is { age} years old today"},
		{"trailing space", "{name} is {age } years old today", "John is {age } years old today"},
		{"tab", "{\tk}", "{\tk}"},
		{"newline", "{k\n}", "{k\n}"},
		{"carriage return", "{k\r}", "{k\r}"},
		{"no-break space", "{k\u00a0}", "{k\u00a0}"},
		{"three-per-em space", "{name} is {age\u2004} years old today", "John is {age\u2004} years old today"},
		{"ideographic space", "{k\u3000}", "{k\u3000}"},
		{"byte order mark", "{\ufeffk}", "{\ufeffk}"},
		{"line separator", "{k\u2028}", "{k\u2028}"},
		{"whitespace then valid", "{ {b}", "{ 1"},
		{"restart then valid", "{a{b}", "{a1"},
		{"multi-word key", "{age age}", "{age age}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.input, vars))
		})
	}
}

// TestFormat_MissingKeys tests that absent keys substitute nothing.
func TestFormat_MissingKeys(t *testing.T) {
	t.Run("single missing key", func(t *testing.T) {
		assert.Equal(t, "", Format("{k}", Named(nil)))
	})

	t.Run("nil lookup", func(t *testing.T) {
		assert.Equal(t, "a  b", Format("a {x} b", nil))
	})

	t.Run("positional index in named lookup", func(t *testing.T) {
		result := Format("{name} is {0} years old today", Named(map[string]any{"name": "John"}))
		assert.Equal(t, "John is  years old today", result)
	})

	t.Run("nil value", func(t *testing.T) {
		assert.Equal(t, "[]", Format("[{0}]", Named(map[string]any{"0": nil})))
	})
}

// TestFormat_EdgeCases tests edge cases.
func TestFormat_EdgeCases(t *testing.T) {
	t.Run("empty string", func(t *testing.T) {
		assert.Equal(t, "", Format("", Positional("John", 25)))
	})

	t.Run("whitespace only", func(t *testing.T) {
		assert.Equal(t, "         ", Format("         ", Positional("John", 25)))
	})

	t.Run("no braces is identity", func(t *testing.T) {
		inputs := []string{
			"plain text",
			"closing only }}",
			"multi\nline\ttext with \u00fcn\u00efc\u00f6d\u00e9 and \U0001F615",
			string([]byte{0xff, 'a', 0xfe}),
		}
		for _, in := range inputs {
			assert.Equal(t, in, Format(in, Named(map[string]any{"a": 1})))
		}
	})

	t.Run("invalid utf-8 is preserved around placeholders", func(t *testing.T) {
		in := string([]byte{0xff}) + "{a}" + string([]byte{0xfe})
		assert.Equal(t, string([]byte{0xff})+"1"+string([]byte{0xfe}), Format(in, Positional().With("a", 1)))
	})

	t.Run("gibberish", func(t *testing.T) {
		vars := Named(map[string]any{
			"name":       "Gonarch",
			"age":        25,
			"{a}":        "!!INJECTION_CASE_0!!",
			"{":          "!!INJECTION_CASE_1!!",
			"}":          "!!INJECTION_CASE_2!!",
			"}}":         "!!INJECTION_CASE_3!!",
			"{{":         "!!INJECTION_CASE_4!!",
			"\u4356":     "???",
			"\U0001F615": "{a}",
		})
		result := Format("{name}{{ name}} { {{{ a{{name}{\U0001F615} d}}}}} } {{{{age}}}} {age age} {{{age}{{a}}{}{\u4356}", vars)
		assert.Equal(t, "Gonarch{{ name}} { {{{ a{Gonarch{a} d}}}}} } {{{age}}} {age age} {{25{a}{}???", result)
	})

	t.Run("long brace run", func(t *testing.T) {
		in := strings.Repeat("{", 10000) + "k" + strings.Repeat("}", 10000)
		out := Format(in, Named(map[string]any{"k": "v"}))
		assert.Equal(t, strings.Repeat("{", 9999)+"k"+strings.Repeat("}", 9999), out)
	})
}

// TestFormatNullable tests passthrough of nil and empty templates.
func TestFormatNullable(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, FormatNullable(nil, Positional("John", 25)))
	})

	t.Run("empty returns same pointer", func(t *testing.T) {
		empty := ""
		result := FormatNullable(&empty, Positional("John", 25))
		assert.Same(t, &empty, result)
	})

	t.Run("formats non-empty", func(t *testing.T) {
		tmpl := "Hi {0}"
		result := FormatNullable(&tmpl, Positional("John"))
		require.NotNil(t, result)
		assert.Equal(t, "Hi John", *result)
		assert.Equal(t, "Hi {0}", tmpl)
	})
}

// TestFormatWithStats tests the scan counters.
func TestFormatWithStats(t *testing.T) {
	f := NewFormatter()

	t.Run("mixed placeholders", func(t *testing.T) {
		out, stats := f.FormatWithStats(context.Background(), "{0} {{1}} {2} {}", Positional("a"))
		assert.Equal(t, "a {1}  {}", out)
		assert.Equal(t, Stats{Placeholders: 3, Substituted: 1, Missing: 1, Escaped: 1}, stats)
	})

	t.Run("empty template", func(t *testing.T) {
		out, stats := f.FormatWithStats(context.Background(), "", nil)
		assert.Equal(t, "", out)
		assert.Equal(t, Stats{}, stats)
	})

	t.Run("invalid candidates are not counted", func(t *testing.T) {
		_, stats := f.FormatWithStats(context.Background(), "{ a} {} {b", Named(nil))
		assert.Equal(t, Stats{}, stats)
	})
}

// TestFormatAll tests batch formatting of string slices.
func TestFormatAll(t *testing.T) {
	vars := Named(map[string]any{"env": "prod", "region": "us-east"})

	t.Run("basic", func(t *testing.T) {
		result := FormatAll([]string{"https://{env}.api.com", "{env}.{region}"}, vars)
		assert.Equal(t, []string{"https://prod.api.com", "prod.us-east"}, result)
	})

	t.Run("nil slice", func(t *testing.T) {
		assert.Nil(t, FormatAll(nil, vars))
	})

	t.Run("empty slice", func(t *testing.T) {
		assert.Equal(t, []string{}, FormatAll([]string{}, vars))
	})
}

// TestFormatMap tests recursive map formatting.
func TestFormatMap(t *testing.T) {
	vars := Named(map[string]any{"env": "prod", "host": "api.example.com"})

	t.Run("nested values", func(t *testing.T) {
		input := map[string]any{
			"url":  "https://{host}",
			"port": 8080,
			"nested": map[string]any{
				"name": "{env}",
			},
			"list": []any{"{env}", 3, map[string]any{"h": "{host}"}},
		}
		result := FormatMap(input, vars)

		assert.Equal(t, "https://api.example.com", result["url"])
		assert.Equal(t, 8080, result["port"])

		nested, ok := result["nested"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "prod", nested["name"])

		list, ok := result["list"].([]any)
		require.True(t, ok)
		assert.Equal(t, "prod", list[0])
		assert.Equal(t, 3, list[1])
		assert.Equal(t, map[string]any{"h": "api.example.com"}, list[2])

		assert.Equal(t, "{env}", input["nested"].(map[string]any)["name"], "input must not be modified")
	})

	t.Run("nil map", func(t *testing.T) {
		assert.Nil(t, FormatMap(nil, vars))
	})
}

// TestFormat_Concurrent runs many formats against a shared lookup.
func TestFormat_Concurrent(t *testing.T) {
	vars := Positional("a", "b", "c")
	f := NewFormatter(WithLogger(discardLogger()))

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			want := fmt.Sprintf("%d:abc", i)
			got := f.Format(context.Background(), fmt.Sprintf("%d:{0}{1}{2}", i), vars)
			if got != want {
				errs <- got
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		t.Errorf("unexpected result %q", got)
	}
}
