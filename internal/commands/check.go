package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"builder-gen/internal/synth"
)

func registerCheckCmd(parent *cobra.Command) {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "check [packages|files...]",
		Short: "Validate records without generating code",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	opts.register(cmd)

	parent.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string, opts *selectOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	s := synth.New(cfg, synth.Options{DebugDump: debugDump(cmd)})

	report, err := synthesize(cmd.Context(), s, args, synth.ModeCheck, opts.types)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), report.Diagnostics)

	if err := reportError("check", report); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d record(s)\n", len(report.Results))

	return nil
}
