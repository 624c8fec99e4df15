package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initCLI is a minimal command tree for exercising Init.
type initCLI struct {
	Level         string   `default:"info"`
	Pretty        bool     `default:"true"`
	MaxIterations int      `default:"16"`
	Include       []string
	PprofMode     string   `default:"cpu"`

	Init Init `cmd:""`
}

func initContext(t *testing.T, confPath string, args ...string) (context.Context, *initCLI) {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	require.NoError(t, err)

	ktx, err := parser.Parse(append([]string{"init"}, args...))
	require.NoError(t, err)

	return WithContext(t.Context(), ktx), &cli
}

func TestInit_WritesFlagValues(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "gpp", "config.yaml")
	ctx, cli := initContext(t, confPath, "--level=debug")

	require.NoError(t, cli.Init.Run(ctx))

	data, err := os.ReadFile(confPath)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))

	assert.Equal(t, "debug", got["level"])
	assert.Equal(t, true, got["pretty"])
	assert.EqualValues(t, 16, got["max-iterations"])
	assert.NotContains(t, got, "include")
	assert.NotContains(t, got, "pprof-mode")
	assert.NotContains(t, got, "help")
}

func TestInit_ExistingFile(t *testing.T) {
	confPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(confPath, []byte("existing: 1\n"), 0o600))

	ctx, cli := initContext(t, confPath)

	err := cli.Init.Run(ctx)
	require.ErrorIs(t, err, ErrWriteConfig)
	require.ErrorIs(t, err, ErrFileExists)

	data, err := os.ReadFile(confPath)
	require.NoError(t, err)
	assert.Equal(t, "existing: 1\n", string(data))

	ctx, cli = initContext(t, confPath, "--force")
	require.NoError(t, cli.Init.Run(ctx))

	data, err = os.ReadFile(confPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level: info")
}
