package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("Should return logger from context when present", func(t *testing.T) {
		expected := NewLogger(TestConfig())
		ctx := ContextWithLogger(t.Context(), expected)

		actual := FromContext(ctx)
		require.NotNil(t, actual)
		assert.Same(t, expected, actual)
	})

	t.Run("Should return default logger when no logger in context", func(t *testing.T) {
		require.NotNil(t, FromContext(t.Context()))
	})

	t.Run("Should return default logger when wrong type in context", func(t *testing.T) {
		ctx := context.WithValue(t.Context(), LoggerCtxKey, "not a logger")
		require.NotNil(t, FromContext(ctx))
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("Should write text output", func(t *testing.T) {
		var buf bytes.Buffer

		l := NewLogger(&Config{Level: InfoLevel, Output: &buf, TimeFormat: "15:04:05"})
		l.Info("generated builder", "record", "Command")

		assert.Contains(t, buf.String(), "generated builder")
		assert.Contains(t, buf.String(), "record=Command")
	})

	t.Run("Should write JSON output when enabled", func(t *testing.T) {
		var buf bytes.Buffer

		l := NewLogger(&Config{Level: InfoLevel, Output: &buf, JSON: true})
		l.Info("generated builder", "record", "Command")

		assert.Contains(t, buf.String(), `"msg":"generated builder"`)
		assert.Contains(t, buf.String(), `"record":"Command"`)
	})

	t.Run("Should carry fields added with With", func(t *testing.T) {
		var buf bytes.Buffer

		l := NewLogger(&Config{Level: InfoLevel, Output: &buf}).With("package", "store")
		l.Warn("annotation ignored")

		assert.Contains(t, buf.String(), "package=store")
		assert.Contains(t, buf.String(), "annotation ignored")
	})
}

func TestLoggerLevels(t *testing.T) {
	t.Run("Should respect log level filtering", func(t *testing.T) {
		var buf bytes.Buffer

		l := NewLogger(&Config{Level: WarnLevel, Output: &buf})
		l.Debug("debug message")
		l.Info("info message")
		l.Warn("warn message")
		l.Error("error message")

		out := buf.String()
		assert.NotContains(t, out, "debug message")
		assert.NotContains(t, out, "info message")
		assert.Contains(t, out, "warn message")
		assert.Contains(t, out, "error message")
	})

	t.Run("Should disable all logging when DisabledLevel is used", func(t *testing.T) {
		var buf bytes.Buffer

		l := NewLogger(&Config{Level: DisabledLevel, Output: &buf})
		l.Error("error message")

		assert.Empty(t, buf.String())
	})
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, level)

	_, err = ParseLevel("verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown log level "verbose"`)
}

func TestSetupLogger(t *testing.T) {
	var errOut bytes.Buffer

	var got Logger

	cmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := SetupLogger(cmd)
			if err != nil {
				return err
			}

			got = FromContext(cmd.Context())
			assert.Same(t, l, got)
			got.Debug("hello from debug")

			return nil
		},
	}
	RegisterFlags(cmd)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--log-level", "debug"})

	require.NoError(t, cmd.ExecuteContext(t.Context()))
	require.NotNil(t, got)
	assert.Contains(t, errOut.String(), "hello from debug")
}

func TestSetupLogger_BadLevel(t *testing.T) {
	cmd := &cobra.Command{
		Use:           "test",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := SetupLogger(cmd)
			return err
		},
	}
	RegisterFlags(cmd)
	cmd.SetArgs([]string{"--log-level", "loud"})

	assert.Error(t, cmd.Execute())
}
