package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func stepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "Show the step count of the last 24 hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.gate.Authorize(ctx); err != nil {
				return err
			}

			total, err := a.reader.Steps(ctx)
			if err != nil {
				return err
			}

			fmt.Printf("%d steps in the last 24 hours\n", total)
			return nil
		},
	}
}
