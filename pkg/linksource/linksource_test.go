package linksource_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/gpm/pkg/filesystem"
	"github.com/arthur-debert/gpm/pkg/linksource"
	"github.com/arthur-debert/gpm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoPath(t *testing.T) {
	tests := []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"https://github.com/getgrav/grav-plugin-admin", "grav-plugin-admin", true},
		{"https://github.com/getgrav/grav-plugin-admin.git", "grav-plugin-admin", true},
		{"http://github.com/getgrav/grav-theme-quark/", "grav-theme-quark", true},
		{"https://user:pw@bitbucket.org/team/repo.git", "repo", true},
		{"https://gitlab.com/group/project", "", false},
		{"git@github.com:getgrav/grav.git", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, ok := linksource.RepoPath(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocate_FirstRootWins(t *testing.T) {
	base := t.TempDir()
	rootA := filepath.Join(base, "a")
	rootB := filepath.Join(base, "b")
	for _, root := range []string{rootA, rootB} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "grav-plugin-admin"), 0755))
	}

	pkg := &types.Package{Slug: "admin", Repository: "https://github.com/getgrav/grav-plugin-admin.git"}

	l := linksource.NewLocator(filesystem.NewOS(), []string{rootA, rootB})
	for i := 0; i < 3; i++ {
		got, ok := l.Locate(pkg)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(rootA, "grav-plugin-admin"), got)
	}

	reversed := linksource.NewLocator(filesystem.NewOS(), []string{rootB, rootA})
	got, ok := reversed.Locate(pkg)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(rootB, "grav-plugin-admin"), got)
}

func TestLocate_SkipsRootsWithoutMatch(t *testing.T) {
	base := t.TempDir()
	empty := filepath.Join(base, "empty")
	full := filepath.Join(base, "full")
	require.NoError(t, os.MkdirAll(empty, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(full, "theme"), 0755))

	l := linksource.NewLocator(filesystem.NewOS(), []string{empty, full})
	got, ok := l.Locate(&types.Package{Repository: "https://bitbucket.org/me/theme"})
	require.True(t, ok)
	assert.Equal(t, filepath.Join(full, "theme"), got)
}

func TestLocate_NoMatch(t *testing.T) {
	l := linksource.NewLocator(filesystem.NewOS(), []string{t.TempDir()})

	_, ok := l.Locate(&types.Package{Repository: "https://github.com/x/missing"})
	assert.False(t, ok)

	_, ok = l.Locate(&types.Package{Repository: "ftp://example.com/x"})
	assert.False(t, ok)

	_, ok = linksource.NewLocator(filesystem.NewOS(), nil).Locate(&types.Package{Repository: "https://github.com/x/y"})
	assert.False(t, ok)
}

func TestLocate_CheckoutDirectlyUnderRoot(t *testing.T) {
	root := t.TempDir()
	checkout := filepath.Join(root, "grav-plugin-admin")
	require.NoError(t, os.MkdirAll(checkout, 0755))
	// A host-named level is not part of the layout
	require.NoError(t, os.MkdirAll(filepath.Join(root, "github", "grav-plugin-form"), 0755))

	l := linksource.NewLocator(filesystem.NewOS(), []string{root})

	got, ok := l.Locate(&types.Package{Slug: "admin", Repository: "https://github.com/getgrav/grav-plugin-admin.git"})
	require.True(t, ok)
	assert.Equal(t, checkout, got)

	_, ok = l.Locate(&types.Package{Slug: "form", Repository: "https://github.com/getgrav/grav-plugin-form"})
	assert.False(t, ok)
}
