package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sbomcheck/internal/cli/config"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(config.ResetConfig)
	t.Chdir(t.TempDir())

	out := &bytes.Buffer{}
	cmd := NewRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	assert.True(t, names["check"])
	assert.True(t, names["rules"])
	assert.True(t, names["version"])
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	flags := NewRootCmd().PersistentFlags()
	for _, name := range []string{"config", "out-dir", "extension", "workers", "verbose", "output"} {
		assert.NotNil(t, flags.Lookup(name), "missing persistent flag %s", name)
	}
}

func TestRootCmd_VersionCommand(t *testing.T) {
	out, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sbomcheck v")
}

func TestRootCmd_VersionFlag(t *testing.T) {
	out, err := executeRoot(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestRootCmd_LoadsConfigBeforeRun(t *testing.T) {
	_, err := executeRoot(t, "rules", "--format", "markdown")
	require.NoError(t, err)
	assert.NotNil(t, config.GetCurrentConfig())
}

func TestRootCmd_FlagOverridesConfig(t *testing.T) {
	_, err := executeRoot(t, "rules", "--format", "markdown", "--workers", "9")
	require.NoError(t, err)

	cfg := config.GetCurrentConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, 9, cfg.Workers)
}
