package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(ctx context.Context, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestInterruptIsCleanExit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := execute(ctx, "0", t.TempDir(), "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "listening")
	assert.Contains(t, out, "server stopped")
}

func TestInvalidPort(t *testing.T) {
	_, err := execute(context.Background(), "eighty", t.TempDir())
	assert.ErrorContains(t, err, `invalid port "eighty"`)
}

func TestMissingDirectory(t *testing.T) {
	out, err := execute(context.Background(), "0", t.TempDir()+"/nope")
	assert.ErrorContains(t, err, "failed to listen")

	// reported once, by the logger
	assert.Equal(t, 1, strings.Count(out, "server failed"), out)
	assert.NotContains(t, out, "Error:")

	var b bytes.Buffer
	report(&b, err)
	assert.Empty(t, b.String())
}

func TestReportInvalidPort(t *testing.T) {
	out, err := execute(context.Background(), "eighty", t.TempDir())
	require.Error(t, err)
	assert.Empty(t, out)

	var b bytes.Buffer
	report(&b, err)
	assert.Equal(t, "Error: invalid port \"eighty\"\n", b.String())
}

func TestArgsRequired(t *testing.T) {
	_, err := execute(context.Background(), "8080")
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(context.Background(), "0", t.TempDir(), "--log-level", "chatty")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestEnvOverridesFlags(t *testing.T) {
	t.Setenv("WEBSERVER_LOG_LEVEL", "chatty")
	_, err := execute(context.Background(), "0", t.TempDir())
	assert.ErrorContains(t, err, `invalid log level "chatty"`)
}
