package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/types"
)

// PluginPackage returns a downloadable plugin fixture
func PluginPackage(slug string) *types.Package {
	return &types.Package{
		Slug:        slug,
		Name:        strings.ToUpper(slug[:1]) + slug[1:],
		Kind:        types.KindPlugin,
		InstallPath: "user/plugins/" + slug,
		Version:     "1.0.0",
		Repository:  "https://github.com/getgrav/grav-plugin-" + slug,
		ZipballURL:  "https://example.test/" + slug + "/" + slug + "-1.0.0.zip",
	}
}

// ThemePackage returns a downloadable theme fixture
func ThemePackage(slug string) *types.Package {
	p := PluginPackage(slug)
	p.Kind = types.KindTheme
	p.InstallPath = "user/themes/" + slug
	p.Repository = "https://github.com/getgrav/grav-theme-" + slug
	return p
}

// FakeCatalog serves fixed packages and a fixed resolution
type FakeCatalog struct {
	Packages      map[string]*types.Package
	Resolution    types.Resolution
	ResolveErr    error
	ResolvedNames [][]string
}

// NewFakeCatalog indexes pkgs by slug
func NewFakeCatalog(pkgs ...*types.Package) *FakeCatalog {
	c := &FakeCatalog{Packages: map[string]*types.Package{}}
	for _, p := range pkgs {
		c.Packages[p.Slug] = p
	}
	return c
}

// FindPackages implements types.Catalog
func (c *FakeCatalog) FindPackages(names []string) types.FindResult {
	var r types.FindResult
	for _, n := range names {
		if p, ok := c.Packages[strings.ToLower(n)]; ok {
			r.Found = append(r.Found, p)
		} else {
			r.NotFound = append(r.NotFound, n)
		}
	}
	return r
}

// FindPackage implements types.Catalog
func (c *FakeCatalog) FindPackage(name string) (*types.Package, bool) {
	p, ok := c.Packages[name]
	return p, ok
}

// GetDependencies implements types.Catalog
func (c *FakeCatalog) GetDependencies(names []string) (types.Resolution, error) {
	c.ResolvedNames = append(c.ResolvedNames, names)
	if c.ResolveErr != nil {
		return types.Resolution{}, c.ResolveErr
	}
	return c.Resolution, nil
}

// InstallCall records one FakeInstaller.Install invocation
type InstallCall struct {
	Archive  string
	DestRoot string
	Opts     types.InstallOptions
}

// FakeInstaller records installs and writes a marker file at the target
// instead of extracting. Errs maps a slug to the error its install returns.
type FakeInstaller struct {
	mu       sync.Mutex
	Calls    []InstallCall
	Errs     map[string]error
	Validate func(path string, allowed ...types.DestinationState) error
	// ArchiveSeen records whether the archive existed when Install ran
	ArchiveSeen []bool
	// PlatformVersion is returned by DetectPlatformVersion
	PlatformVersion string
}

// IsPlatformInstance reports whether root has a user directory
func (f *FakeInstaller) IsPlatformInstance(root string) bool {
	info, err := os.Stat(filepath.Join(root, "user"))
	return err == nil && info.IsDir()
}

// DetectPlatformVersion returns PlatformVersion
func (f *FakeInstaller) DetectPlatformVersion(string) string {
	return f.PlatformVersion
}

// NewFakeInstaller creates an installer that succeeds for every package
func NewFakeInstaller() *FakeInstaller {
	return &FakeInstaller{Errs: map[string]error{}}
}

// ValidateDestination implements types.Installer
func (f *FakeInstaller) ValidateDestination(path string, allowed ...types.DestinationState) error {
	if f.Validate != nil {
		return f.Validate(path, allowed...)
	}
	return nil
}

// Install implements types.Installer
func (f *FakeInstaller) Install(archivePath, destRoot string, opts types.InstallOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, InstallCall{Archive: archivePath, DestRoot: destRoot, Opts: opts})
	_, statErr := os.Stat(archivePath)
	f.ArchiveSeen = append(f.ArchiveSeen, statErr == nil)

	if err := f.Errs[opts.Slug]; err != nil {
		return err
	}

	target := filepath.Join(destRoot, filepath.FromSlash(opts.RelativePath))
	if err := os.RemoveAll(target); err != nil {
		return err
	}
	if err := os.MkdirAll(target, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(target, "installed.txt"), []byte(opts.Slug), 0644)
}

// Installed lists the slugs passed to Install in call order
func (f *FakeInstaller) Installed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.Calls {
		out = append(out, c.Opts.Slug)
	}
	return out
}

// FakeTransfer serves canned bodies by URL
type FakeTransfer struct {
	mu     sync.Mutex
	Bodies map[string][]byte
	Steps  []int
	URLs   []string
}

// NewFakeTransfer creates a transfer reporting 0, 50, 100 for each get
func NewFakeTransfer() *FakeTransfer {
	return &FakeTransfer{Bodies: map[string][]byte{}, Steps: []int{0, 50, 100}}
}

// Get implements types.Transfer
func (f *FakeTransfer) Get(ctx context.Context, url string, onProgress types.ProgressFunc) ([]byte, error) {
	f.mu.Lock()
	f.URLs = append(f.URLs, url)
	body, ok := f.Bodies[url]
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrTransport, "cancelled")
	}
	if !ok {
		return nil, errors.Newf(errors.ErrTransport, "GET %s: 404 Not Found", url)
	}
	if onProgress != nil {
		for _, s := range f.Steps {
			onProgress(s)
		}
	}
	return body, nil
}
