package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"pockd/internal/auth"
)

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authorize pockd against your Pocket account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()

			requestToken, err := app.client.RequestToken(ctx)
			if err != nil {
				return fmt.Errorf("obtain request token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Open this URL in a browser and approve access:")
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), "  "+app.client.AuthorizeURL(requestToken))
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), "Press Enter once you have approved... ")

			reader := bufio.NewReader(cmd.InOrStdin())
			if _, err := reader.ReadString('\n'); err != nil {
				return fmt.Errorf("wait for confirmation: %w", err)
			}

			authz, err := app.client.Authorize(ctx, requestToken)
			if err != nil {
				return fmt.Errorf("authorize: %w", err)
			}

			user := &auth.User{
				Username:    authz.Username,
				AccessToken: authz.AccessToken,
			}
			if err := app.session.Save(user); err != nil {
				return fmt.Errorf("save session: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", authz.Username)
			return nil
		},
	}
}
