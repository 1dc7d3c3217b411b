package paths_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/gpm/pkg/paths"
	"github.com/stretchr/testify/assert"
)

func TestNew_EnvironmentOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(paths.EnvConfigDir, filepath.Join(tmp, "cfg"))
	t.Setenv(paths.EnvCacheDir, filepath.Join(tmp, "cache"))

	p := paths.New()

	assert.Equal(t, filepath.Join(tmp, "cfg"), p.ConfigDir())
	assert.Equal(t, filepath.Join(tmp, "cache"), p.CacheDir())
	assert.Equal(t, filepath.Join(tmp, "cfg", "gpm.toml"), p.ConfigFile())
	assert.Equal(t, filepath.Join(tmp, "cfg", "dev.yaml"), p.DevConfigFile())
	assert.Equal(t, "gpm", filepath.Base(p.StateDir()))
}

func TestNew_XDGDefaults(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, "")
	t.Setenv(paths.EnvCacheDir, "")

	p := paths.New()

	assert.Equal(t, "gpm", filepath.Base(p.ConfigDir()))
	assert.Equal(t, "gpm", filepath.Base(p.CacheDir()))
	assert.True(t, filepath.IsAbs(p.CacheDir()))
}

func TestDestinationLayout(t *testing.T) {
	root := "/var/www/site"

	assert.Equal(t, "/var/www/site/user", paths.UserPath(root))
	assert.Equal(t, "/var/www/site/user/pages", paths.PagesPath(root))
	assert.Equal(t, "/var/www/site/cache", paths.SiteCachePath(root))
	assert.Equal(t, "/c/tmp/gpm-abc", paths.TempDownloadDir("/c", "abc"))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	assert.Equal(t, filepath.Join(home, "projects"), paths.ExpandHome("~/projects"))
	assert.Equal(t, home, paths.ExpandHome("~"))
	assert.Equal(t, "/abs/path", paths.ExpandHome("/abs/path"))
	assert.Equal(t, "rel/~x", paths.ExpandHome("rel/~x"))
}
