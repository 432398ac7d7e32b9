package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"builder-gen/internal/gen"
	"builder-gen/internal/logger"
	"builder-gen/internal/synth"
)

type genOptions struct {
	selectOptions
	out string
}

func registerGenCmd(parent *cobra.Command) {
	opts := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen [packages|files...]",
		Short: "Generate builders",
		Long: `Generate a <record>_builder.go file for every selected struct. Files are
written next to the declaring source unless --out is given.`,
		Example: `  # Every struct marked //builder:generate in the current package
  builder-gen gen

  # Named types from a file, into another directory
  builder-gen gen ./command.go --type Command --out ./generated`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGen(cmd, args, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output directory (default: the record's source directory)")

	parent.AddCommand(cmd)
}

func runGen(cmd *cobra.Command, args []string, opts *genOptions) error {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)

	cfg, err := loadConfig(cmd, &opts.selectOptions)
	if err != nil {
		return err
	}

	s := synth.New(cfg, synth.Options{OutputDir: opts.out, DebugDump: debugDump(cmd)})

	report, err := synthesize(ctx, s, args, synth.ModeGenerate, opts.types)
	if err != nil {
		return err
	}

	printDiagnostics(cmd.ErrOrStderr(), report.Diagnostics)

	for _, f := range report.Failures {
		log.Error("generation failed", "error", f)
	}

	written, err := gen.WriteFiles(report.Files(), opts.out)
	if err != nil {
		return err
	}

	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}

	log.Info("done", "written", len(written))

	return reportError("gen", report)
}
