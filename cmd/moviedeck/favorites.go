package main

import (
	"fmt"
	"strconv"

	"github.com/amaumene/moviedeck/internal/favorites"
	"github.com/spf13/cobra"
)

func newFavoritesCmd() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage stored favorites",
	}
	cmd.PersistentFlags().StringVar(&user, "user", "", "account id (empty for the anonymous set)")

	// withStore opens the configured storage for the selected user
	withStore := func(fn func(cmd *cobra.Command, store *favorites.Store, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			env, cleanup, err := initializeFavorites()
			if err != nil {
				return err
			}
			defer cleanup()

			store := favorites.NewStore(env.Storage, favorites.KeyFor(user), nil, env.Logger)
			return fn(cmd, store, args)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print favorite ids",
			Args:  cobra.NoArgs,
			RunE: withStore(func(cmd *cobra.Command, store *favorites.Store, args []string) error {
				return printJSON(cmd.OutOrStdout(), store.Load())
			}),
		},
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "Add or remove a favorite",
			Args:  cobra.ExactArgs(1),
			RunE: withStore(func(cmd *cobra.Command, store *favorites.Store, args []string) error {
				id, err := parseMovieID(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), store.Toggle(id))
			}),
		},
		&cobra.Command{
			Use:   "remove <id>",
			Short: "Remove a favorite",
			Args:  cobra.ExactArgs(1),
			RunE: withStore(func(cmd *cobra.Command, store *favorites.Store, args []string) error {
				id, err := parseMovieID(args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), store.Remove(id))
			}),
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every favorite",
			Args:  cobra.NoArgs,
			RunE: withStore(func(cmd *cobra.Command, store *favorites.Store, args []string) error {
				store.Clear()
				return printJSON(cmd.OutOrStdout(), store.Load())
			}),
		},
	)

	return cmd
}

func parseMovieID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid movie id %q", arg)
	}
	return id, nil
}
