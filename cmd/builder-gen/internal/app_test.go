package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer

	require.NoError(t, Run(t.Context(), []string{"--help"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "builder-gen")
	assert.Contains(t, stdout.String(), "gen")
	assert.Contains(t, stdout.String(), "check")
	assert.Contains(t, stdout.String(), "plan")
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := Run(t.Context(), []string{"frobnicate"}, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
