package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"bvhkit/bvh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, bvh.DefaultWriteOptions(), cfg.Write.Options())
}

func TestLoad(t *testing.T) {
	t.Setenv("BVHKIT_TEST_WORKERS", "12")
	path := writeConfig(t, `
log_level: debug
write:
  tabs: true
  line_terminator: crlf
  motion_precision: 4
check:
  workers: ${BVHKIT_TEST_WORKERS}
`)

	cfg := Default()
	require.NoError(t, Load(path, cfg))

	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 12, cfg.Check.Workers)
	options := cfg.Write.Options()
	assert.Equal(t, "\t", options.Indent)
	assert.Equal(t, bvh.CRLF, options.LineTerminator)
	assert.Equal(t, 4, options.MotionPrecision)
	assert.Equal(t, ShortestPrecision, options.OffsetPrecision)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "line terminator", content: "write:\n  line_terminator: cr\n"},
		{name: "indent", content: "write:\n  indent: 9\n"},
		{name: "precision", content: "write:\n  offset_precision: -2\n"},
		{name: "workers", content: "check:\n  workers: 0\n"},
		{name: "yaml", content: "write: [\n"},
		{name: "log level", content: "log_level: loud\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			cfg := Default()
			assert.Error(t, Load(writeConfig(t, testCase.content), cfg))
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg := Default()
	loaded, err := LoadOrDefault("", cfg)
	require.NoError(t, err)
	assert.False(t, loaded)

	loaded, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"), cfg)
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Equal(t, Default(), cfg)

	loaded, err = LoadOrDefault(writeConfig(t, "check:\n  workers: 2\n"), cfg)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, 2, cfg.Check.Workers)
}
