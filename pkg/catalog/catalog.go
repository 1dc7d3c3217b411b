package catalog

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/arthur-debert/gpm/pkg/filesystem"
	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/paths"
	"github.com/arthur-debert/gpm/pkg/types"
	"gopkg.in/yaml.v3"
)

// BlueprintFile holds an installed package's metadata
const BlueprintFile = "blueprints.yaml"

// Catalog implements types.Catalog over a parsed index
type Catalog struct {
	entries      map[string]*IndexEntry
	packages     map[string]*types.Package
	platformName string
}

var _ types.Catalog = (*Catalog)(nil)

// New builds a catalog for idx, reading installed versions below destRoot.
// platformName is the dependency name that denotes the platform itself.
func New(idx *Index, destRoot, platformName string) *Catalog {
	return newCatalog(idx, destRoot, platformName, filesystem.NewOS())
}

func newCatalog(idx *Index, destRoot, platformName string, fsys types.FS) *Catalog {
	c := &Catalog{
		entries:      make(map[string]*IndexEntry, len(idx.Packages)),
		packages:     make(map[string]*types.Package, len(idx.Packages)),
		platformName: strings.ToLower(platformName),
	}
	for i := range idx.Packages {
		e := &idx.Packages[i]
		c.entries[e.Slug] = e
		c.packages[e.Slug] = materialize(e, destRoot, fsys)
	}
	return c
}

func materialize(e *IndexEntry, destRoot string, fsys types.FS) *types.Package {
	kind := types.KindPlugin
	if strings.EqualFold(e.Type, string(types.KindTheme)) {
		kind = types.KindTheme
	}

	installPath := e.InstallPath
	if installPath == "" {
		dir := "plugins"
		if kind == types.KindTheme {
			dir = "themes"
		}
		installPath = paths.UserDir + "/" + dir + "/" + e.Slug
	}

	p := &types.Package{
		Slug:        e.Slug,
		Name:        e.Name,
		Kind:        kind,
		InstallPath: installPath,
		Version:     e.Version,
		Repository:  e.Repository,
		ZipballURL:  e.ZipballURL,
	}
	p.InstalledVersion = installedVersion(fsys, p.Destination(destRoot))
	if p.InstalledVersion != "" && newer(p.Version, p.InstalledVersion) {
		p.Available = p.Version
	}
	return p
}

// installedVersion reads the version key of blueprints.yaml in dir
func installedVersion(fsys types.FS, dir string) string {
	data, err := fsys.ReadFile(filepath.Join(dir, BlueprintFile))
	if err != nil {
		return ""
	}
	var bp struct {
		Version string `yaml:"version"`
	}
	if err := yaml.Unmarshal(data, &bp); err != nil {
		logger := logging.GetLogger("catalog")
		logger.Warn().Err(err).Str("dir", dir).Msg("Unreadable blueprint")
		return ""
	}
	return strings.TrimSpace(bp.Version)
}

// newer reports whether a is a strictly higher version than b. Unparseable
// versions are never newer.
func newer(a, b string) bool {
	va, err := semver.NewVersion(a)
	if err != nil {
		return false
	}
	vb, err := semver.NewVersion(b)
	if err != nil {
		return false
	}
	return va.GreaterThan(vb)
}

// FindPackages looks names up case-insensitively. Found keeps request
// order and drops duplicates.
func (c *Catalog) FindPackages(names []string) types.FindResult {
	var r types.FindResult
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if p, ok := c.packages[key]; ok {
			r.Found = append(r.Found, p)
		} else {
			r.NotFound = append(r.NotFound, n)
		}
	}
	return r
}

// FindPackage returns the package with slug name
func (c *Catalog) FindPackage(name string) (*types.Package, bool) {
	p, ok := c.packages[strings.ToLower(name)]
	return p, ok
}

// Packages returns every indexed package in slug order
func (c *Catalog) Packages() []*types.Package {
	slugs := make([]string, 0, len(c.packages))
	for s := range c.packages {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)
	out := make([]*types.Package, 0, len(slugs))
	for _, s := range slugs {
		out = append(out, c.packages[s])
	}
	return out
}
