package synth

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/sync/errgroup"

	"builder-gen/internal/classify"
	"builder-gen/internal/config"
	"builder-gen/internal/diagnostic"
	"builder-gen/internal/gen"
	"builder-gen/internal/logger"
	"builder-gen/internal/model"
	"builder-gen/internal/schema"
)

// Options tunes a Synthesizer beyond the project configuration.
type Options struct {
	// OutputDir receives the unformatted sidecar when formatting fails.
	OutputDir string
	// DebugDump logs a spew dump of every builder model at debug level.
	DebugDump bool
}

// Synthesizer runs the builder pipeline with one configuration.
type Synthesizer struct {
	cfg       *config.Config
	opts      Options
	parser    *schema.Parser
	generator *gen.Generator
}

// New creates a Synthesizer; a nil cfg means config.Default().
func New(cfg *config.Config, opts Options) *Synthesizer {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Synthesizer{
		cfg:       cfg,
		opts:      opts,
		parser:    schema.NewParser(cfg.ParserOptions()),
		generator: gen.NewGenerator(cfg.GeneratorConfig(opts.OutputDir)),
	}
}

// Result is the outcome of the pipeline for one record.
type Result struct {
	Record string
	// Source is the file declaring the record.
	Source string
	// Builder is set in plan and generate mode when the record is valid.
	Builder *model.Builder
	// File is set in generate mode when the record is valid.
	File        *gen.GeneratedFile
	Diagnostics diagnostic.Diagnostics
}

// Struct runs the pipeline for a single record schema. The returned error is
// the record's error diagnostics, or a generation failure.
func (s *Synthesizer) Struct(ctx context.Context, rec *schema.Struct, mode Mode) (*Result, error) {
	log := logger.FromContext(ctx).With("record", rec.Name)
	res := &Result{Record: rec.Name, Source: rec.Filename}

	classified, err := classify.Struct(rec, s.cfg.ClassifyOptions())
	res.Diagnostics.Merge(classified.Diagnostics)

	for _, w := range classified.Diagnostics.Warnings {
		log.Warn(w.Message, "field", w.Field, "code", w.Code)
	}

	if err != nil {
		return res, err
	}

	conflicts := model.Check(rec, classified.Strategies, s.cfg.ModelOptions())
	res.Diagnostics.Merge(conflicts)

	if conflicts.HasErrors() {
		return res, conflicts.Err()
	}

	log.Debug("classified", "fields", len(classified.Strategies))

	if mode == ModeCheck {
		return res, nil
	}

	res.Builder = model.New(rec, classified.Strategies, s.cfg.ModelOptions())

	if s.opts.DebugDump {
		log.Debug("builder model", "dump", spew.Sdump(res.Builder))
	}

	if mode == ModePlan {
		return res, nil
	}

	file, err := s.generator.Generate(res.Builder)
	if err != nil {
		return res, fmt.Errorf("generating %s: %w", res.Builder.Name, err)
	}

	res.File = file
	log.Info("generated builder", "builder", gen.Describe(res.Builder), "file", file.Filename)

	return res, nil
}

// Report collects the results of a whole run.
type Report struct {
	Mode    Mode
	Results []*Result
	// Diagnostics aggregates the diagnostics of every result and selection.
	Diagnostics diagnostic.Diagnostics
	// Failures holds non-diagnostic errors, such as formatting failures.
	Failures []error
}

// Err returns every error of the run, or nil.
func (r *Report) Err() error {
	return errors.Join(append([]error{r.Diagnostics.Err()}, r.Failures...)...)
}

// Files returns the generated files in deterministic order.
func (r *Report) Files() []gen.GeneratedFile {
	var files []gen.GeneratedFile

	for _, res := range r.Results {
		if res.File != nil {
			files = append(files, *res.File)
		}
	}

	return files
}

// Builders returns the planned builder models in report order.
func (r *Report) Builders() []*model.Builder {
	var out []*model.Builder

	for _, res := range r.Results {
		if res.Builder != nil {
			out = append(out, res.Builder)
		}
	}

	return out
}

// run processes the selected records concurrently and assembles the report.
func (s *Synthesizer) run(ctx context.Context, sel *selection, mode Mode) (*Report, error) {
	report := &Report{Mode: mode}
	report.Diagnostics.Merge(sel.diags)

	results := make([]*Result, len(sel.records))
	errs := make([]error, len(sel.records))

	g, gctx := errgroup.WithContext(ctx)
	if s.cfg.Concurrency > 0 {
		g.SetLimit(s.cfg.Concurrency)
	}

	for i, rec := range sel.records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i], errs[i] = s.Struct(gctx, rec, mode)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, res := range results {
		report.Results = append(report.Results, res)
		report.Diagnostics.Merge(res.Diagnostics)

		var de *diagnostic.Error
		if errs[i] != nil && !errors.As(errs[i], &de) {
			report.Failures = append(report.Failures, errs[i])
		}
	}

	slices.SortStableFunc(report.Results, func(a, b *Result) int {
		return cmp.Or(cmp.Compare(a.Source, b.Source), cmp.Compare(a.Record, b.Record))
	})

	return report, nil
}

// File synthesizes the records of one Go source file. src follows
// go/parser.ParseFile: when nil the file is read from filename.
func (s *Synthesizer) File(ctx context.Context, filename string, src any, mode Mode, typeNames ...string) (*Report, error) {
	f, err := s.parser.ParseFile(filename, src)
	if err != nil {
		return nil, err
	}

	sel, err := selectRecords([]*schema.File{f}, typeNames)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, sel, mode)
}

// Files synthesizes the records of several Go source files, selecting types
// across all of them.
func (s *Synthesizer) Files(ctx context.Context, filenames []string, mode Mode, typeNames ...string) (*Report, error) {
	files := make([]*schema.File, 0, len(filenames))

	for _, name := range filenames {
		f, err := s.parser.ParseFile(name, nil)
		if err != nil {
			return nil, err
		}

		files = append(files, f)
	}

	sel, err := selectRecords(files, typeNames)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, sel, mode)
}

// Packages synthesizes the records of the packages matching patterns.
func (s *Synthesizer) Packages(ctx context.Context, patterns []string, mode Mode, typeNames ...string) (*Report, error) {
	pkgs, err := s.parser.Load(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	var files []*schema.File
	for _, p := range pkgs {
		logger.FromContext(ctx).Debug("loaded package", "path", p.Path, "files", len(p.Files))
		files = append(files, p.Files...)
	}

	sel, err := selectRecords(files, typeNames)
	if err != nil {
		return nil, err
	}

	return s.run(ctx, sel, mode)
}
