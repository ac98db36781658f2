package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show one article from the local mirror",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			article, err := app.library.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:        %s\n", article.ID)
			fmt.Fprintf(out, "Title:     %s\n", article.Title)
			fmt.Fprintf(out, "URL:       %s\n", article.URL)
			if article.Excerpt != "" {
				fmt.Fprintf(out, "Excerpt:   %s\n", article.Excerpt)
			}
			fmt.Fprintf(out, "Words:     %d\n", article.WordCount)
			if article.TimeToRead > 0 {
				fmt.Fprintf(out, "Read time: %d min\n", article.TimeToRead)
			}
			fmt.Fprintf(out, "Archived:  %v\n", article.IsArchived == 1)
			fmt.Fprintf(out, "Favorite:  %v\n", article.IsFavorite == 1)
			if len(article.Tags) > 0 {
				fmt.Fprintf(out, "Tags:      %s\n", strings.Join(article.Tags, ", "))
			}
			printTimestamp(out, "Added:    ", article.CreatedAt)
			printTimestamp(out, "Updated:  ", article.UpdatedAt)
			printTimestamp(out, "Read at:  ", article.ReadAt)
			printTimestamp(out, "Fav at:   ", article.FavoritedAt)
			return nil
		},
	}
}

func printTimestamp(out io.Writer, label string, ts *string) {
	if ts == nil {
		return
	}
	fmt.Fprintf(out, "%s %s\n", label, *ts)
}
