package logger

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// Flag names registered by RegisterFlags.
const (
	FlagLogLevel  = "log-level"
	FlagLogJSON   = "log-json"
	FlagLogSource = "log-source"
)

// RegisterFlags adds the logging flags to cmd's persistent flag set.
func RegisterFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(FlagLogLevel, string(InfoLevel), "log level (debug, info, warn, error, disabled)")
	cmd.PersistentFlags().Bool(FlagLogJSON, false, "log as JSON")
	cmd.PersistentFlags().Bool(FlagLogSource, false, "include source location in logs")
}

// GetLoggerConfig reads the logging flags of cmd into a Config writing to out.
func GetLoggerConfig(cmd *cobra.Command, out io.Writer) (*Config, error) {
	logLevel, err := cmd.Flags().GetString(FlagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s flag: %w", FlagLogLevel, err)
	}

	logJSON, err := cmd.Flags().GetBool(FlagLogJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s flag: %w", FlagLogJSON, err)
	}

	logSource, err := cmd.Flags().GetBool(FlagLogSource)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s flag: %w", FlagLogSource, err)
	}

	level, err := ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	cfg.Level = level
	cfg.Output = out
	cfg.JSON = logJSON
	cfg.AddSource = logSource

	return cfg, nil
}

// ParseLevel validates a level name.
func ParseLevel(s string) (LogLevel, error) {
	switch level := LogLevel(strings.ToLower(s)); level {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel, DisabledLevel:
		return level, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

// SetupLogger builds the logger described by cmd's flags and attaches it to
// the command context.
func SetupLogger(cmd *cobra.Command) (Logger, error) {
	cfg, err := GetLoggerConfig(cmd, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	l := NewLogger(cfg)
	cmd.SetContext(ContextWithLogger(ctx, l))

	return l, nil
}
