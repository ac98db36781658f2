package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replace the local mirror with the remote library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			stats, err := app.sync.Sync(cmd.Context())
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}
			if stats == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Sync already in progress")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Synced %d articles, %d tags in %s\n",
				stats.Articles, stats.Tags, stats.Duration.Round(time.Millisecond))
			return nil
		},
	}
}
