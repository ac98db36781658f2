package main

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "pockd",
	Short:         "pockd - an offline mirror of your Pocket library",
	Long:          "pockd keeps a local copy of your saved articles and tags, syncs it against the Pocket API, and lets you browse and mutate the library from the terminal.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newOpenCmd())
	rootCmd.AddCommand(newArchiveCmd())
	rootCmd.AddCommand(newUnarchiveCmd())
	rootCmd.AddCommand(newFavoriteCmd())
	rootCmd.AddCommand(newUnfavoriteCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newTagsCmd())
}
