package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/pokedex/pkg/client"
	"github.com/Sternrassler/pokedex/pkg/pokemon"
)

// show: detail view of one Pokémon by number.
func showCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <number>",
		Short: "Show the details of one Pokémon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid number %q: want a positive integer", args[0])
			}

			p, err := a.loader.LoadByID(cmd.Context(), id)
			if err != nil {
				if errors.Is(err, client.ErrNotFound) {
					return fmt.Errorf("pokemon #%d not found", id)
				}
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			return pokemon.WriteDetail(cmd.OutOrStdout(), p)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}
