// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"
	"io"

	"builder-gen/internal/commands"
)

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd := commands.NewRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	return rootCmd.ExecuteContext(ctx)
}
