// pkg/demo/provisioner_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Real temp site
// PURPOSE: Demo queueing, backup naming and copy ordering

package demo_test

import (
	"os"
	"testing"
	"time"

	"github.com/arthur-debert/gpm/pkg/demo"
	"github.com/arthur-debert/gpm/pkg/testutil"
	"github.com/arthur-debert/gpm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

const backupName = "pages.03-05-2024-14-07-09"

func newProvisioner(site *testutil.Site, c *testutil.ScriptedConfirmer, r *testutil.RecordingReporter) *demo.Provisioner {
	return demo.New(demo.Options{
		Root:      site.Root,
		Confirmer: c,
		Reporter:  r,
		Now:       func() time.Time { return fixedNow },
	})
}

// themeWithDemo installs a theme that bundles pages and config
func themeWithDemo(t *testing.T, site *testutil.Site) *types.Package {
	t.Helper()
	pkg := testutil.ThemePackage("quark")
	site.WriteFile(t, "user/themes/quark/_demo/pages/01.home/default.md", "demo home")
	site.WriteFile(t, "user/themes/quark/_demo/config/site.yaml", "title: Demo")
	return pkg
}

func TestQueue(t *testing.T) {
	site := testutil.NewSite(t)
	p := newProvisioner(site, testutil.NewScriptedConfirmer(), &testutil.RecordingReporter{})

	withDemo := themeWithDemo(t, site)
	plain := testutil.PluginPackage("plain")
	site.WriteFile(t, "user/plugins/plain/plain.php", "x")

	assert.True(t, p.Queue(withDemo))
	assert.False(t, p.Queue(withDemo), "queued once")
	assert.False(t, p.Queue(plain))
	require.Len(t, p.Pending(), 1)
	assert.Equal(t, "quark", p.Pending()[0].Slug)
}

func TestDrain_BacksUpThenCopies(t *testing.T) {
	site := testutil.NewSite(t)
	site.WriteFile(t, "user/pages/01.home/default.md", "live home")
	confirmer := testutil.NewScriptedConfirmer(true, true)
	reporter := &testutil.RecordingReporter{}
	p := newProvisioner(site, confirmer, reporter)
	require.True(t, p.Queue(themeWithDemo(t, site)))

	results := p.Drain()

	require.Len(t, results, 1)
	assert.Equal(t, demo.StatusInstalled, results[0].Status)
	assert.Equal(t, backupName, results[0].Backup)

	assert.Equal(t, "live home", site.ReadFile(t, "user/"+backupName+"/01.home/default.md"), "pages moved to backup")
	assert.Equal(t, "demo home", site.ReadFile(t, "user/pages/01.home/default.md"))
	assert.Equal(t, "title: Demo", site.ReadFile(t, "user/config/site.yaml"))

	assert.Equal(t, []string{
		"Do you wish to install this demo content?",
		"This will backup your current `user/pages` folder to `user/" + backupName + "`, continue?",
	}, confirmer.Questions)
	assert.Less(t, reporter.Index("Backing up pages...    ok"), reporter.Index("Installing demo content...    ok"))
	assert.True(t, reporter.Contains("Attention: Quark contains demo content"))
	assert.Empty(t, p.Pending(), "queue drained")
}

func TestDrain_BackupNameIsUnique(t *testing.T) {
	site := testutil.NewSite(t)
	site.WriteFile(t, "user/pages/a.md", "live")
	site.WriteFile(t, "user/"+backupName+"/old.md", "earlier backup")
	p := newProvisioner(site, testutil.NewScriptedConfirmer(true, true), &testutil.RecordingReporter{})
	require.True(t, p.Queue(themeWithDemo(t, site)))

	results := p.Drain()

	require.Len(t, results, 1)
	assert.Equal(t, backupName+"-1", results[0].Backup)
	assert.Equal(t, "earlier backup", site.ReadFile(t, "user/"+backupName+"/old.md"))
	assert.Equal(t, "live", site.ReadFile(t, "user/"+backupName+"-1/a.md"))
}

func TestDrain_Declined(t *testing.T) {
	site := testutil.NewSite(t)
	site.WriteFile(t, "user/pages/a.md", "live")
	reporter := &testutil.RecordingReporter{}
	p := newProvisioner(site, testutil.NewScriptedConfirmer(false), reporter)
	require.True(t, p.Queue(themeWithDemo(t, site)))

	results := p.Drain()

	assert.Equal(t, demo.StatusDeclined, results[0].Status)
	assert.Equal(t, "live", site.ReadFile(t, "user/pages/a.md"))
	assert.False(t, site.Exists("user/config"))
	assert.True(t, reporter.Contains("Skipped!"))
}

func TestDrain_BackupDeclinedSkipsCopy(t *testing.T) {
	site := testutil.NewSite(t)
	site.WriteFile(t, "user/pages/a.md", "live")
	p := newProvisioner(site, testutil.NewScriptedConfirmer(true, false), &testutil.RecordingReporter{})
	require.True(t, p.Queue(themeWithDemo(t, site)))

	results := p.Drain()

	assert.Equal(t, demo.StatusBackupDeclined, results[0].Status)
	assert.Equal(t, "live", site.ReadFile(t, "user/pages/a.md"))
	assert.False(t, site.Exists("user/pages/01.home"))
	assert.False(t, site.Exists("user/"+backupName))
}

func TestDrain_NoPagesInDemoSkipsBackupQuestion(t *testing.T) {
	site := testutil.NewSite(t)
	site.WriteFile(t, "user/pages/a.md", "live")
	site.WriteFile(t, "user/plugins/widget/_demo/config/plugins/widget.yaml", "enabled: true")
	confirmer := testutil.NewScriptedConfirmer(true)
	p := newProvisioner(site, confirmer, &testutil.RecordingReporter{})
	require.True(t, p.Queue(testutil.PluginPackage("widget")))

	results := p.Drain()

	assert.Equal(t, demo.StatusInstalled, results[0].Status)
	assert.Empty(t, results[0].Backup)
	assert.Len(t, confirmer.Questions, 1)
	assert.Equal(t, "live", site.ReadFile(t, "user/pages/a.md"))
	assert.Equal(t, "enabled: true", site.ReadFile(t, "user/config/plugins/widget.yaml"))
}

func TestDrain_NoLivePages(t *testing.T) {
	site := testutil.NewSite(t)
	p := newProvisioner(site, testutil.NewScriptedConfirmer(true, true), &testutil.RecordingReporter{})
	require.True(t, p.Queue(themeWithDemo(t, site)))

	results := p.Drain()

	assert.Equal(t, demo.StatusInstalled, results[0].Status)
	assert.Empty(t, results[0].Backup)
	_, err := os.Stat(site.Path("user/" + backupName))
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, "demo home", site.ReadFile(t, "user/pages/01.home/default.md"))
}
