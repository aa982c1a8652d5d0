package main

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// NewLsCommand creates the ls subcommand.
func NewLsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List the contents of the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("cannot read directory: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Contents of %s:\n", dir)
			for _, name := range lo.Map(entries, func(e os.DirEntry, _ int) string { return e.Name() }) {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
