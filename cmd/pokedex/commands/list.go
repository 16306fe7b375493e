package commands

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/pokedex/pkg/pagination"
)

// list: load pages on demand until the ceiling is reached.
func listCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Pokémon page by page",
		Long: fmt.Sprintf("List the first %d Pokémon, %d at a time. After each page the command asks\n"+
			"whether to load more; --all loads every page without asking.",
			pagination.MaxRecords, pagination.DefaultPageSize),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := pagination.NewController(a.loader, pagination.DefaultConfig())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			in := bufio.NewScanner(cmd.InOrStdin())

			for {
				page, err := ctrl.Advance(cmd.Context())
				switch {
				case errors.Is(err, pagination.ErrExhausted):
					return nil
				case err != nil:
					if all {
						return err
					}
					a.logger.Error().Err(err).Msg("Failed to load page")
					fmt.Fprintf(out, "could not load #%d-#%d\n", page.Offset+1, page.Offset+page.Limit)
				default:
					for _, p := range page.Records {
						fmt.Fprintln(out, p.Summary())
					}
				}

				if ctrl.Exhausted() {
					return nil
				}
				if all {
					continue
				}

				fmt.Fprint(out, "Load more? [Y/n] ")
				if !in.Scan() {
					fmt.Fprintln(out)
					return in.Err()
				}
				switch strings.ToLower(strings.TrimSpace(in.Text())) {
				case "n", "no", "q", "quit":
					return nil
				}
			}
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "load every page without prompting")
	return cmd
}
