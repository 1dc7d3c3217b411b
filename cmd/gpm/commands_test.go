// cmd/gpm/commands_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Real temp site, httptest server, cobra command tree
// PURPOSE: Command wiring from flags through config to a finished install

package gpm_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/gpm/cmd/gpm"
	"github.com/arthur-debert/gpm/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every gpm directory at a fresh temp dir
func isolate(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv("GPM_CONFIG_DIR", filepath.Join(base, "config"))
	t.Setenv("GPM_CACHE_DIR", filepath.Join(base, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	t.Setenv("NO_COLOR", "1")
	return base
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := gpm.NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func serveArchives(t *testing.T, archives map[string][]byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := archives[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeIndex(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "index.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInstallCmd(t *testing.T) {
	base := isolate(t)
	site := testutil.NewSite(t)

	srv := serveArchives(t, map[string][]byte{
		"/form.zip": testutil.ZipBytes(t, map[string]string{
			"grav-plugin-form-4.0.0/blueprints.yaml": "name: Form\nversion: 4.0.0\n",
		}),
		"/admin.zip": testutil.ZipBytes(t, map[string]string{
			"grav-plugin-admin-1.10.0/blueprints.yaml": "name: Admin\nversion: 1.10.0\n",
			"grav-plugin-admin-1.10.0/admin.php":       "<?php",
		}),
	})

	index := writeIndex(t, base, `
packages:
  - slug: admin
    name: Admin
    type: plugin
    version: 1.10.0
    zipball_url: `+srv.URL+`/admin.zip
    dependencies:
      - form
  - slug: form
    name: Form
    type: plugin
    version: 4.0.0
    zipball_url: `+srv.URL+`/form.zip
`)

	out, err := execute(t, "", "install", "admin", "-y", "--no-symlinks", "-d", site.Root, "--index", index)
	require.NoError(t, err, out)

	assert.Contains(t, site.ReadFile(t, "user/plugins/admin/blueprints.yaml"), "1.10.0")
	assert.Contains(t, site.ReadFile(t, "user/plugins/form/blueprints.yaml"), "4.0.0")
	assert.True(t, site.Exists("user/plugins/admin/admin.php"))
	assert.Contains(t, out, "The following dependencies need to be installed...")
	assert.Contains(t, out, "Installed: form, admin")
}

func TestInstallCmd_Prompted(t *testing.T) {
	base := isolate(t)
	site := testutil.NewSite(t)
	site.WriteFile(t, "user/plugins/admin/blueprints.yaml", "version: 1.0.0\n")

	srv := serveArchives(t, map[string][]byte{
		"/admin.zip": testutil.ZipBytes(t, map[string]string{
			"admin/blueprints.yaml": "version: 1.10.0\n",
		}),
	})
	index := writeIndex(t, base, `
packages:
  - slug: admin
    type: plugin
    version: 1.10.0
    zipball_url: `+srv.URL+`/admin.zip
`)

	out, err := execute(t, "n\n", "install", "admin", "--no-symlinks", "-d", site.Root, "--index", index)
	require.NoError(t, err, out)

	assert.Contains(t, out, "do you want to overwrite it?")
	assert.Contains(t, out, "Skipped: admin")
	assert.Equal(t, "version: 1.0.0\n", site.ReadFile(t, "user/plugins/admin/blueprints.yaml"))
}

func TestInstallCmd_NotASite(t *testing.T) {
	base := isolate(t)
	index := writeIndex(t, base, "packages:\n  - slug: admin\n    type: plugin\n")

	out, err := execute(t, "", "install", "admin", "-y", "-d", t.TempDir(), "--index", index)
	require.Error(t, err)
	assert.Contains(t, out, "ERROR: ")
	assert.Contains(t, out, "Aborted.")
}

func TestInstallCmd_NoIndex(t *testing.T) {
	isolate(t)
	site := testutil.NewSite(t)

	_, err := execute(t, "", "install", "admin", "-d", site.Root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no package index configured")
}

func TestInstallCmd_ConflictingSymlinkFlags(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "install", "admin", "--symlinks", "--no-symlinks")
	require.Error(t, err)
}

func TestInstallCmd_RequiresPackage(t *testing.T) {
	isolate(t)
	_, err := execute(t, "", "install")
	require.Error(t, err)
}

func TestGenConfigCmd(t *testing.T) {
	base := isolate(t)

	out, err := execute(t, "", "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "symlinks")
	assert.Contains(t, out, "ask")

	_, err = execute(t, "", "genconfig", "-w")
	require.NoError(t, err)
	written := filepath.Join(base, "config", "gpm.toml")
	assert.FileExists(t, written)

	_, err = execute(t, "", "genconfig", "-w")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestVersionCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gpm version dev")
}

func TestCompletionCmd(t *testing.T) {
	isolate(t)
	out, err := execute(t, "", "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "gpm")
}
