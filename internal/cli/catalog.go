package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/fmtstring/pkg/fmtstring/catalog"
)

func newCatalogCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage stored templates",
		Long: `Store, inspect and remove named templates in a SQLite catalog.

Every catalog subcommand needs --catalog or the catalog key of --config.`,
	}

	cmd.AddCommand(newCatalogPutCmd(root))
	cmd.AddCommand(&cobra.Command{
		Use:   "get NAME",
		Short: "Print a stored template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, root, func(store catalog.Store) error {
				text, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("template %q: %w", args[0], err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, root, func(store catalog.Store) error {
				infos, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tID\tBYTES\tRUNES\tUPDATED")
				for _, info := range infos {
					fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
						info.Name, info.ID, info.Size, info.Runes, info.UpdatedAt.Format(time.RFC3339))
				}
				return tw.Flush()
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete NAME",
		Short: "Remove a stored template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCatalog(cmd, root, func(store catalog.Store) error {
				return store.Delete(cmd.Context(), args[0])
			})
		},
	})

	return cmd
}

func newCatalogPutCmd(root *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "put NAME [TEMPLATE]",
		Short: "Store a template under NAME",
		Long:  `Store a template under NAME, replacing any template already stored there.`,
		Example: `  fmtstring catalog put greeting "Hello {name}" --catalog templates.db
  fmtstring catalog put invoice -f invoice.txt --catalog templates.db`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			switch {
			case len(args) == 2 && file != "":
				return errors.New("TEMPLATE and --file are mutually exclusive")
			case len(args) == 2:
				text = args[1]
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read template file: %w", err)
				}
				text = string(data)
			default:
				return errors.New("no template: pass TEMPLATE or --file")
			}

			return withCatalog(cmd, root, func(store catalog.Store) error {
				info, err := store.Put(cmd.Context(), args[0], text)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "stored %s (%s, %d bytes)\n", info.Name, info.ID, info.Size)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the template from a file")
	return cmd
}

func withCatalog(cmd *cobra.Command, root *rootOptions, fn func(catalog.Store) error) error {
	s, err := root.resolve(cmd)
	if err != nil {
		return err
	}
	store, err := s.openCatalog(s.logger(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}
