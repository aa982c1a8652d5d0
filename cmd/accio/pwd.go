package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewPwdCommand creates the pwd subcommand.
func NewPwdCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pwd",
		Short: "Print the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
