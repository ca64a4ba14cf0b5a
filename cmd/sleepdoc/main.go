package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sleepdoctor/sleepdoc/internal/version"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "sleepdoc",
		Short:   "Google Fit sleep and body data bridge",
		Version: version.Get(),
		RunE:    runTUI,
	}

	rootCmd.AddCommand(
		authCmd(),
		callCmd(),
		stepsCmd(),
		serveCmd(),
		tokenCmd(),
		migrateCmd(),
		tuiCmd(),
	)

	if err := fang.Execute(context.Background(), rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
