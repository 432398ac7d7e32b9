// Package config holds the builder-gen project configuration, read from a
// .builder-gen.yaml file next to the sources.
package config

import (
	"errors"
	"fmt"
	"go/token"
	"runtime"
	"strings"

	"builder-gen/internal/classify"
	"builder-gen/internal/gen"
	"builder-gen/internal/model"
	"builder-gen/internal/schema"
)

// FileName is the conventional name of the configuration file.
const FileName = ".builder-gen.yaml"

// CurrentVersion is the current version of the config file format.
const CurrentVersion = 1

// Config represents the .builder-gen.yaml configuration file.
type Config struct {
	Version int `yaml:"version"`
	// Suffix is appended to the record name to name the builder.
	Suffix string `yaml:"suffix,omitempty"`
	// Tag is the struct tag key carrying annotations.
	Tag string `yaml:"tag,omitempty"`
	// Directive is the comment prefix of annotation and marker directives.
	Directive string `yaml:"directive,omitempty"`
	// FileSuffix is appended to the snake_case record name to name the output.
	FileSuffix string `yaml:"file_suffix,omitempty"`
	// RuntimeImport is the import path of the package providing MissingFieldError.
	RuntimeImport string `yaml:"runtime_import,omitempty"`
	// ReportAll keeps validating fields after the first error.
	ReportAll bool `yaml:"report_all,omitempty"`
	// Comments toggles doc comments in generated code. Defaults to true.
	Comments *bool `yaml:"comments,omitempty"`
	// Concurrency bounds the number of records processed at once.
	Concurrency int `yaml:"concurrency,omitempty"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = CurrentVersion
	}

	if cfg.Suffix == "" {
		cfg.Suffix = model.DefaultSuffix
	}

	if cfg.Tag == "" {
		cfg.Tag = schema.DefaultTagKey
	}

	if cfg.Directive == "" {
		cfg.Directive = schema.DefaultDirective
	}

	if cfg.FileSuffix == "" {
		cfg.FileSuffix = gen.DefaultFileSuffix
	}

	if cfg.RuntimeImport == "" {
		cfg.RuntimeImport = gen.DefaultRuntimeImport
	}

	if cfg.Comments == nil {
		comments := true
		cfg.Comments = &comments
	}

	if cfg.Concurrency == 0 {
		cfg.Concurrency = runtime.GOMAXPROCS(0)
	}
}

// Validate checks the configuration for valid values.
func (c *Config) Validate() error {
	var errs []error

	if c.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("unsupported config version %d", c.Version))
	}

	if !token.IsIdentifier("X" + c.Suffix) {
		errs = append(errs, fmt.Errorf("suffix %q does not form a Go identifier", c.Suffix))
	}

	if c.Tag == "" || strings.ContainsAny(c.Tag, " \t\":`") {
		errs = append(errs, fmt.Errorf("tag %q is not a valid struct tag key", c.Tag))
	}

	if c.Directive == "" || strings.ContainsAny(c.Directive, " \t") {
		errs = append(errs, fmt.Errorf("directive %q must be a non-empty word", c.Directive))
	}

	if !strings.HasSuffix(c.FileSuffix, ".go") || strings.HasSuffix(c.FileSuffix, "_test.go") {
		errs = append(errs, fmt.Errorf("file_suffix %q must end in .go and not _test.go", c.FileSuffix))
	}

	if c.RuntimeImport == "" {
		errs = append(errs, errors.New("runtime_import is required"))
	}

	if c.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency))
	}

	return errors.Join(errs...)
}

// ParserOptions returns the schema parser options of the configuration.
func (c *Config) ParserOptions() schema.Options {
	return schema.Options{TagKey: c.Tag, Directive: c.Directive}
}

// ClassifyOptions returns the classification options of the configuration.
func (c *Config) ClassifyOptions() classify.Options {
	return classify.Options{ReportAll: c.ReportAll}
}

// ModelOptions returns the builder naming options of the configuration.
func (c *Config) ModelOptions() model.Options {
	return model.Options{Suffix: c.Suffix}
}

// GeneratorConfig returns the emitter configuration, writing debug output to outDir.
func (c *Config) GeneratorConfig(outDir string) gen.GeneratorConfig {
	return gen.GeneratorConfig{
		OutputDir:        outDir,
		FileSuffix:       c.FileSuffix,
		RuntimeImport:    c.RuntimeImport,
		GenerateComments: c.Comments == nil || *c.Comments,
	}
}
