package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config and cache dirs at a temp dir so the user's real
// files never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, filepath.Join(dir, "config"))
	t.Setenv(paths.EnvCacheDir, filepath.Join(dir, "cache"))
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_DefaultsOnly(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	cwd, _ := os.Getwd()
	assert.Equal(t, cwd, cfg.Destination)
	assert.Equal(t, SymlinksAsk, cfg.Symlinks)
	assert.Equal(t, filepath.Join(dir, "cache"), cfg.CacheDir)
	assert.Empty(t, cfg.DevRoots)
}

func TestLoad_DefaultConfigFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", paths.ConfigFileName), `
destination = "/srv/grav"
symlinks = "never"
dev_roots = ["/src/one", "/src/two"]

[platform]
version = "1.7.3"
`)

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "/srv/grav", cfg.Destination)
	assert.Equal(t, SymlinksNever, cfg.Symlinks)
	assert.Equal(t, []string{"/src/one", "/src/two"}, cfg.DevRoots)
	assert.Equal(t, "grav", cfg.Platform.Name)
	assert.Equal(t, "1.7.3", cfg.Platform.Version)
}

func TestLoad_ExplicitYAMLFile(t *testing.T) {
	dir := isolate(t)
	cfgFile := filepath.Join(dir, "custom.yaml")
	writeFile(t, cfgFile, "destination: /srv/site\nassume_yes: true\n")

	cfg, err := Load(LoadOptions{ConfigFile: cfgFile})
	require.NoError(t, err)

	assert.Equal(t, "/srv/site", cfg.Destination)
	assert.True(t, cfg.AssumeYes)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	dir := isolate(t)

	_, err := Load(LoadOptions{ConfigFile: filepath.Join(dir, "nope.toml")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestLoad_BadFile(t *testing.T) {
	dir := isolate(t)
	cfgFile := filepath.Join(dir, "bad.toml")
	writeFile(t, cfgFile, "destination = [unterminated")

	_, err := Load(LoadOptions{ConfigFile: cfgFile})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", paths.ConfigFileName), `symlinks = "never"`)

	t.Setenv("GPM_SYMLINKS", "always")
	t.Setenv("GPM_ASSUME_YES", "true")
	t.Setenv("GPM_PLATFORM__VERSION", "1.6.0")
	t.Setenv("GPM_DEV_ROOTS", "/a,/b")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, SymlinksAlways, cfg.Symlinks)
	assert.True(t, cfg.AssumeYes)
	assert.Equal(t, "1.6.0", cfg.Platform.Version)
	assert.Equal(t, []string{"/a", "/b"}, cfg.DevRoots)
}

func TestLoad_InvalidSymlinkMode(t *testing.T) {
	isolate(t)
	t.Setenv("GPM_SYMLINKS", "maybe")

	_, err := Load(LoadOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
}

func TestLoad_DevRootsFromDevConfig(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "config", paths.DevConfigFileName), "- /work/b\n- /work/a\n")

	cfg, err := Load(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"/work/b", "/work/a"}, cfg.DevRoots)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "assume_yes", envKey("GPM_ASSUME_YES"))
	assert.Equal(t, "platform.version", envKey("GPM_PLATFORM__VERSION"))
}
