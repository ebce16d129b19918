package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/fmtstring/pkg/fmtstring"
	"github.com/randalmurphal/fmtstring/pkg/fmtstring/catalog"
	"github.com/randalmurphal/fmtstring/pkg/fmtstring/config"
)

// ErrNoCatalog is returned by commands that need a template catalog
// when none is configured.
var ErrNoCatalog = errors.New("no catalog configured: set --catalog or the catalog config key")

type rootOptions struct {
	configPath  string
	catalogPath string
	verbose     bool
}

// settings is the effective configuration of one command run.
// Flags that were set explicitly override the config file.
type settings struct {
	catalogPath string
	verbose     bool
	argsFile    string
	args        fmtstring.Lookup
}

// Execute runs the fmtstring command line with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "fmtstring",
		Short: "Substitute {placeholders} in templates",
		Long: `fmtstring renders templates containing {0}-style positional or
{name}-style named placeholders.

Doubled braces escape a placeholder: {{name}} renders as {name}.
Placeholders containing whitespace, and empty braces, stay literal.
Placeholders with no matching argument render as empty text.

Exit Codes:
  0  - Success
  1  - Any error`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to configuration file (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Path to the SQLite template catalog")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newRenderCmd(opts))
	cmd.AddCommand(newCatalogCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// resolve merges the config file, if any, with explicitly set flags.
func (o *rootOptions) resolve(cmd *cobra.Command) (settings, error) {
	s := settings{
		catalogPath: o.catalogPath,
		verbose:     o.verbose,
		args:        fmtstring.Lookup{},
	}
	if o.configPath == "" {
		return s, nil
	}

	cfg, err := config.FromFile(o.configPath)
	if err != nil {
		return settings{}, err
	}

	if !cmd.Flags().Changed("catalog") {
		s.catalogPath = cfg.String(config.KeyCatalog, "")
	}
	if !cmd.Flags().Changed("verbose") {
		s.verbose = cfg.Bool(config.KeyVerbose, false)
	}
	s.argsFile = cfg.String(config.KeyArgsFile, "")

	if s.args, err = cfg.Args(config.KeyArgs); err != nil {
		return settings{}, err
	}
	return s, nil
}

func (s settings) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if s.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openCatalog opens the configured SQLite catalog with logging attached.
func (s settings) openCatalog(logger *slog.Logger) (catalog.Store, error) {
	if s.catalogPath == "" {
		return nil, ErrNoCatalog
	}
	store, err := catalog.NewSQLiteStore(s.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", s.catalogPath, err)
	}
	return catalog.Instrument(store, catalog.WithLogger(logger)), nil
}
