package commands

import (
	"github.com/spf13/cobra"

	"builder-gen/internal/synth"
)

func registerPlanCmd(parent *cobra.Command) {
	opts := &selectOptions{}

	cmd := &cobra.Command{
		Use:   "plan [packages|files...]",
		Short: "Print the builder models as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, args, opts)
		},
	}

	opts.register(cmd)

	parent.AddCommand(cmd)
}

func runPlan(cmd *cobra.Command, args []string, opts *selectOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	s := synth.New(cfg, synth.Options{DebugDump: debugDump(cmd)})

	report, err := synthesize(cmd.Context(), s, args, synth.ModePlan, opts.types)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), report.Diagnostics)

	data, err := synth.MarshalPlan(report.Builders())
	if err != nil {
		return err
	}

	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return err
	}

	return reportError("plan", report)
}
