package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/fmtstring/pkg/fmtstring"
	"github.com/randalmurphal/fmtstring/pkg/fmtstring/config"
)

type renderOptions struct {
	args     []string
	sets     []string
	argsFile string
	file     string
	name     string
	stats    bool
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render [TEMPLATE]",
		Short: "Render a template",
		Long: `Render a template given inline, read from a file, or loaded from the catalog.

Arguments are assembled in this order, later sources overriding earlier ones:
  1. the "args" block of --config, or --args-file / args_file when given
  2. --arg values, bound to {0}, {1}, ...
  3. --set key=value pairs`,
		Example: `  fmtstring render "{0} is {1} years old" -a John -a 25
  fmtstring render "Hello {name}" -s name=John
  fmtstring render -f greeting.txt --args-file args.yaml
  fmtstring render --catalog templates.db --name greeting -s name=John`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.args, "arg", "a", nil, "Positional argument (repeatable)")
	flags.StringArrayVarP(&opts.sets, "set", "s", nil, "Named argument in key=value form (repeatable)")
	flags.StringVar(&opts.argsFile, "args-file", "", "YAML or JSON file holding a sequence or mapping of arguments")
	flags.StringVarP(&opts.file, "file", "f", "", "Read the template from a file (- for stdin)")
	flags.StringVar(&opts.name, "name", "", "Load the template from the catalog by name")
	flags.BoolVar(&opts.stats, "stats", false, "Print placeholder statistics to stderr")

	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions, args []string) error {
	s, err := root.resolve(cmd)
	if err != nil {
		return err
	}
	logger := s.logger(cmd.ErrOrStderr())

	template, err := opts.template(cmd, s, args)
	if err != nil {
		return err
	}

	lookup, err := opts.lookup(s)
	if err != nil {
		return err
	}

	formatter := fmtstring.NewFormatter(fmtstring.WithLogger(logger))
	out, stats := formatter.FormatWithStats(cmd.Context(), template, lookup)

	w := cmd.OutOrStdout()
	fmt.Fprint(w, out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(w)
	}

	if opts.stats {
		fmt.Fprintf(cmd.ErrOrStderr(), "placeholders=%d substituted=%d missing=%d escaped=%d\n",
			stats.Placeholders, stats.Substituted, stats.Missing, stats.Escaped)
	}
	return nil
}

// template returns the template text from exactly one source.
func (o *renderOptions) template(cmd *cobra.Command, s settings, args []string) (string, error) {
	sources := 0
	if len(args) == 1 {
		sources++
	}
	if o.file != "" {
		sources++
	}
	if o.name != "" {
		sources++
	}
	switch {
	case sources == 0:
		return "", errors.New("no template: pass TEMPLATE, --file or --name")
	case sources > 1:
		return "", errors.New("TEMPLATE, --file and --name are mutually exclusive")
	}

	switch {
	case len(args) == 1:
		return args[0], nil
	case o.file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read template from stdin: %w", err)
		}
		return string(data), nil
	case o.file != "":
		data, err := os.ReadFile(o.file)
		if err != nil {
			return "", fmt.Errorf("read template file: %w", err)
		}
		return string(data), nil
	}

	store, err := s.openCatalog(s.logger(cmd.ErrOrStderr()))
	if err != nil {
		return "", err
	}
	defer store.Close()

	text, err := store.Get(cmd.Context(), o.name)
	if err != nil {
		return "", fmt.Errorf("template %q: %w", o.name, err)
	}
	return text, nil
}

// lookup assembles the argument set. See the render command help for
// precedence.
func (o *renderOptions) lookup(s settings) (fmtstring.Lookup, error) {
	base := s.args
	argsFile := s.argsFile
	if o.argsFile != "" {
		argsFile = o.argsFile
	}
	if argsFile != "" {
		loaded, err := config.LoadArgs(argsFile)
		if err != nil {
			return nil, err
		}
		base = loaded
	}

	lookup := make(fmtstring.Lookup, len(base)+len(o.args)+len(o.sets))
	maps.Copy(lookup, base)

	for i, v := range o.args {
		lookup[strconv.Itoa(i)] = v
	}
	for _, kv := range o.sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: want key=value", kv)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid --set %q: empty key", kv)
		}
		lookup[key] = value
	}
	return lookup, nil
}
