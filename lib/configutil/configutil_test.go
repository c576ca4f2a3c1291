package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Output string   `json:"output"`
	Pages  int      `json:"pages"`
	Tags   []string `json:"tags"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	err := os.WriteFile(path, []byte(contents), 0600)
	require.NoError(t, err)
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")
	writeFile(t, name, `{
		// comments are allowed
		output: "builds.txt",
		pages: 3,
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{pages: 10}`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "builds.txt", cfg.Output)
	require.Equal(t, 10, cfg.Pages)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigOr(t *testing.T) {
	defaults := testConfig{Output: "default.txt", Pages: 1, Tags: []string{"a"}}

	cfg, err := ReadConfigOr(filepath.Join(t.TempDir(), "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")
	writeFile(t, name, `{pages: 4}`)
	cfg, err = ReadConfigOr(name, defaults)
	require.NoError(t, err)
	require.Equal(t, testConfig{Output: "default.txt", Pages: 4, Tags: []string{"a"}}, cfg)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")
	writeFile(t, name, `{pages: `)

	_, err := ReadConfig[testConfig](name)
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrNotExist)
}

func TestLocalName(t *testing.T) {
	require.Equal(t, "a/config.local.json5", localName("a/config.json5"))
	require.Equal(t, "telemetry.local.json5", localName("telemetry.json5"))
}
