package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func authCmd() *cobra.Command {
	var logout bool

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Grant access to Google Fit",
		Long:  "Opens the browser to grant the Fitness permissions and stores the token locally.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if logout {
				if err := a.tokens.Forget(ctx); err != nil {
					return err
				}
				fmt.Println("Stored token removed.")
				return nil
			}

			if err := a.flow.Run(ctx); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			token, scopes, err := a.tokens.Stored(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Authentication successful!\n")
			fmt.Printf("Token expires: %s\n", token.Expiry.Format("2006-01-02 15:04:05"))
			fmt.Printf("Granted scopes: %d\n", len(scopes))
			return nil
		},
	}

	cmd.Flags().BoolVar(&logout, "logout", false, "remove the stored token instead of authenticating")
	return cmd
}
