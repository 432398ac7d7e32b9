package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"builder-gen/internal/config"
	"builder-gen/internal/diagnostic"
	"builder-gen/internal/logger"
	"builder-gen/internal/synth"
)

// selectOptions are the record selection flags common to every subcommand.
type selectOptions struct {
	types     []string
	reportAll bool
}

func (o *selectOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&o.types, "type", "t", nil, "Record types to process (default: structs marked //builder:generate)")
	cmd.Flags().BoolVar(&o.reportAll, "report-all", false, "Report every field error instead of stopping at the first one")
}

// loadConfig reads --config, or discovers the config file in the working
// directory, and applies flag overrides.
func loadConfig(cmd *cobra.Command, opts *selectOptions) (*config.Config, error) {
	path, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s flag: %w", flagConfig, err)
	}

	var cfg *config.Config

	if path != "" {
		cfg, err = config.LoadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}

		cfg, path, err = config.Discover(cwd)
		if err != nil {
			return nil, err
		}
	}

	if path != "" {
		logger.FromContext(cmd.Context()).Debug("loaded config", "path", path)
	}

	if cmd.Flags().Changed("report-all") {
		cfg.ReportAll = opts.reportAll
	}

	return cfg, nil
}

// synthesize runs the pipeline over args: Go files when every argument names
// a .go file, package patterns otherwise. No arguments means ".".
func synthesize(ctx context.Context, s *synth.Synthesizer, args []string, mode synth.Mode, types []string) (*synth.Report, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	if allGoFiles(args) {
		return s.Files(ctx, args, mode, types...)
	}

	return s.Packages(ctx, args, mode, types...)
}

func allGoFiles(args []string) bool {
	for _, a := range args {
		if !strings.HasSuffix(a, ".go") {
			return false
		}
	}

	return true
}

// printDiagnostics writes every diagnostic of the report, errors first.
func printDiagnostics(w io.Writer, diags diagnostic.Diagnostics) {
	for _, d := range diags.All() {
		fmt.Fprintf(w, "%s: %s\n", d.Severity, d.String())
	}
}

// reportError summarises a failed run; the details were already printed.
func reportError(name string, report *synth.Report) error {
	if err := report.Err(); err == nil {
		return nil
	}

	n := len(report.Diagnostics.Errors) + len(report.Failures)

	return fmt.Errorf("%s: %d error(s)", name, n)
}

func debugDump(cmd *cobra.Command) bool {
	dump, err := cmd.Flags().GetBool(flagDebugDump)
	return err == nil && dump
}
