package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fav <item-id>",
		Short: "Favorite an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.library.Favorite(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Favorited %s\n", args[0])
			return nil
		},
	}
}

func newUnfavoriteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfav <item-id>",
		Short: "Remove an article from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.library.Unfavorite(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unfavorited %s\n", args[0])
			return nil
		},
	}
}
