package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/templui/scheduletable/cmd/do/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "do",
		Short:        "Development and maintenance tools for the schedule table",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		cmd.GenCmd(),
		cmd.DevCmd(),
		cmd.MigrateCmd(),
		cmd.SeedCmd(),
		cmd.ExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
