// Package linksource finds local development checkouts for packages.
package linksource

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/types"
)

// repoPattern matches a GitHub or Bitbucket HTTPS URL, with optional
// credentials, and captures its last path segment.
var repoPattern = regexp.MustCompile(`^https?://(?:.*@)?(github|bitbucket)(?:\.org|\.com)/.*/([^/]+?)/?$`)

// RepoPath extracts the checkout directory name searched under each
// development root: the last URL segment without ".git". ok is false when
// the URL is not recognized.
func RepoPath(repository string) (string, bool) {
	m := repoPattern.FindStringSubmatch(strings.TrimSpace(repository))
	if m == nil {
		return "", false
	}
	name := strings.TrimSuffix(m[2], ".git")
	if name == "" {
		return "", false
	}
	return name, true
}

// Locator searches development roots in order
type Locator struct {
	fs    types.FS
	roots []string
}

// NewLocator creates a locator over roots; the slice is copied
func NewLocator(fsys types.FS, roots []string) *Locator {
	return &Locator{fs: fsys, roots: append([]string(nil), roots...)}
}

// Roots returns the configured roots in search order
func (l *Locator) Roots() []string {
	return append([]string(nil), l.roots...)
}

// Locate returns the first <root>/<name> that exists. The first
// root wins even if later roots also match.
func (l *Locator) Locate(pkg *types.Package) (string, bool) {
	logger := logging.GetLogger("linksource")

	rel, ok := RepoPath(pkg.Repository)
	if !ok {
		logger.Debug().Str("package", pkg.Slug).Str("repository", pkg.Repository).Msg("Repository URL not recognized")
		return "", false
	}

	for _, root := range l.roots {
		candidate := filepath.Join(root, rel)
		if _, err := l.fs.Stat(candidate); err == nil {
			logger.Debug().Str("package", pkg.Slug).Str("source", candidate).Msg("Found local source")
			return candidate, true
		}
	}
	return "", false
}
