// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"builder-gen/internal/config"
	"builder-gen/internal/logger"
)

// Persistent flag names shared by every subcommand.
const (
	flagConfig    = "config"
	flagDebugDump = "debug-dump"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "builder-gen",
		Short: "Generate builder types for Go structs",
		Long: `builder-gen synthesizes a builder for each selected struct: a factory,
chainable setters, appenders for annotated slice fields, and a Build method
that reports the first required field left unset.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := logger.SetupLogger(cmd)
			return err
		},
	}

	logger.RegisterFlags(rootCmd)
	rootCmd.PersistentFlags().String(flagConfig, "", "Path to the config file (default: ./"+config.FileName+" if present)")
	rootCmd.PersistentFlags().Bool(flagDebugDump, false, "Dump builder models at debug level")

	registerGenCmd(rootCmd)
	registerCheckCmd(rootCmd)
	registerPlanCmd(rootCmd)

	return rootCmd
}
