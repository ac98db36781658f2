package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newTagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Work with tags",
	}

	cmd.AddCommand(newTagsListCmd())
	cmd.AddCommand(newTagsAddCmd())
	cmd.AddCommand(newTagsRemoveCmd())
	cmd.AddCommand(newTagsReplaceCmd())
	cmd.AddCommand(newTagsDeleteCmd())

	return cmd
}

func newTagsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tags with article counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			tags, err := app.library.ListTags(cmd.Context())
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Tag", "Articles"})
			for _, tag := range tags {
				t.AppendRow(table.Row{tag.Value, tag.ItemCount})
			}
			t.Render()
			return nil
		},
	}
}

func newTagsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <item-id> <tag>",
		Short: "Attach a tag to an article",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.library.AddTag(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Tagged %s with %q\n", args[0], args[1])
			return nil
		},
	}
}

func newTagsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item-id> <tag>",
		Short: "Detach a tag from an article",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.library.RemoveTag(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from %s\n", args[1], args[0])
			return nil
		},
	}
}

func newTagsReplaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replace <item-id> [tag...]",
		Short: "Replace an article's tags with the given set (empty clears them)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.library.ReplaceTags(cmd.Context(), args[0], args[1:]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Replaced tags on %s\n", args[0])
			return nil
		},
	}
}

func newTagsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tag>",
		Short: "Delete a tag from every article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.library.DeleteTag(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %q\n", args[0])
			return nil
		},
	}
}
