package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending local database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlDB, _, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = sqlDB.Close() }()

			fmt.Println("Migrations applied successfully")
			return nil
		},
	}
}
