package main

import (
	"github.com/spf13/cobra"
)

func newMoviesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Query the catalog",
	}

	var page int

	popular := &cobra.Command{
		Use:   "popular",
		Short: "List popular movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, cleanup, err := initializeGateway()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := gateway.ListPopular(cmd.Context(), page)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	popular.Flags().IntVar(&page, "page", 1, "page number")

	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search movies by title or overview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gateway, cleanup, err := initializeGateway()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := gateway.Search(cmd.Context(), args[0], page)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	search.Flags().IntVar(&page, "page", 1, "page number")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the details of a movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMovieID(args[0])
			if err != nil {
				return err
			}

			gateway, cleanup, err := initializeGateway()
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := gateway.GetDetails(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.AddCommand(popular, search, show)
	return cmd
}
