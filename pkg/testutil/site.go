package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Site is a temporary destination root laid out like a real site
type Site struct {
	Root     string
	CacheDir string
}

// NewSite creates a destination root with user/, user/plugins,
// user/themes and cache/ plus a separate gpm cache dir.
func NewSite(t *testing.T) *Site {
	t.Helper()

	base := t.TempDir()
	s := &Site{
		Root:     filepath.Join(base, "site"),
		CacheDir: filepath.Join(base, "gpm-cache"),
	}
	for _, dir := range []string{"user/plugins", "user/themes", "cache"} {
		require.NoError(t, os.MkdirAll(filepath.Join(s.Root, dir), 0755))
	}
	return s
}

// Path joins rel below the site root
func (s *Site) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// WriteFile creates rel with content, making parent dirs
func (s *Site) WriteFile(t *testing.T, rel, content string) string {
	t.Helper()
	p := s.Path(rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

// ReadFile returns the content of rel or fails the test
func (s *Site) ReadFile(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(s.Path(rel))
	require.NoError(t, err)
	return string(data)
}

// Exists reports whether rel exists (links are not followed)
func (s *Site) Exists(rel string) bool {
	_, err := os.Lstat(s.Path(rel))
	return err == nil
}

// TempDirs lists the per-run download directories left in the cache
func (s *Site) TempDirs(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(s.CacheDir, "tmp"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}
