package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/sleepdoctor/sleepdoc/internal/config"
	"github.com/sleepdoctor/sleepdoc/internal/oauth"
)

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Show the stored OAuth token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sqlDB, querier, err := openDB(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			// client credentials are not needed to inspect the stored token
			tokens := oauth.NewDBTokenSource(oauth.NewConfig(config.Google{}), querier)

			token, scopes, err := tokens.Stored(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("Token type:    %s\n", token.TokenType)
			fmt.Printf("Expires:       %s\n", token.Expiry.Format(time.RFC3339))
			fmt.Printf("Valid:         %t\n", token.Valid())
			fmt.Printf("Refreshable:   %t\n", token.RefreshToken != "")
			fmt.Println("Scopes:")
			for _, s := range oauth.Scopes {
				mark := "missing"
				if slices.Contains(scopes, s) {
					mark = "granted"
				}
				fmt.Printf("  %-8s %s\n", mark, s)
			}
			return nil
		},
	}
}
