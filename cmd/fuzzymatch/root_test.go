package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args against a clean environment.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	for _, key := range []string{
		"FUZZYMATCH_PROVIDER",
		"FUZZYMATCH_NAMESPACE",
		"FUZZYMATCH_MIN_SCORE",
		"FUZZYMATCH_WORKERS",
		"FUZZYMATCH_NORMALIZE",
	} {
		t.Setenv(key, "")
	}

	cmd := NewRootCmd("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd("1.2.3")
	assert.Equal(t, "fuzzymatch", cmd.Use)
	assert.Equal(t, "1.2.3", cmd.Version)

	for _, name := range []string{"config", "provider", "namespace", "verbose", "json"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "missing persistent flag %q", name)
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"match", "score", "index", "clear"})
}

func TestInvalidConfig(t *testing.T) {
	_, _, err := run(t, "clear", "--provider", "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := run(t, "clear", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")
}

func TestClearMemory(t *testing.T) {
	out, _, err := run(t, "clear", "--namespace", "languages")
	require.NoError(t, err)
	assert.Equal(t, "cleared memory/languages\n", out)
}

func TestIndexMemory(t *testing.T) {
	path := writeFile(t, "langs.txt", "rust\njava\nlisp\n")

	out, _, err := run(t, "index", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, "indexed 3 candidates into memory/fuzzymatch\n", out)
}

func TestIndexRequiresFile(t *testing.T) {
	_, _, err := run(t, "index")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file is required")
}
