package types

import "path/filepath"

// PackageKind distinguishes plugins from themes
type PackageKind string

const (
	KindPlugin PackageKind = "plugin"
	KindTheme  PackageKind = "theme"
)

// DemoDirName is the reserved subdirectory holding bundled demo content
const DemoDirName = "_demo"

// Package is an installable unit as described by the catalog. The
// orchestrator treats it as read-only.
type Package struct {
	// Slug is the package identifier used on the command line
	Slug string
	// Name is the human display name
	Name string
	// Kind is plugin or theme
	Kind PackageKind
	// InstallPath is relative to the destination root
	InstallPath string
	// InstalledVersion is empty when the package is not installed
	InstalledVersion string
	// Version is the latest installable version; empty means source-only
	Version string
	// Available is set when a newer version than InstalledVersion exists
	Available string
	// Repository is the source repository URL
	Repository string
	// ZipballURL is where the release archive is downloaded from
	ZipballURL string
}

// DisplayName returns Name, falling back to Slug
func (p *Package) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Slug
}

// IsTheme reports whether the package is a theme
func (p *Package) IsTheme() bool {
	return p.Kind == KindTheme
}

// HasInstallableVersion is false for packages that can only come from source
func (p *Package) HasInstallableVersion() bool {
	return p.Version != ""
}

// TargetVersion is the version a download would install
func (p *Package) TargetVersion() string {
	if p.Available != "" {
		return p.Available
	}
	return p.Version
}

// Destination returns the absolute install location under root
func (p *Package) Destination(root string) string {
	return filepath.Join(root, filepath.FromSlash(p.InstallPath))
}

// DemoDir returns where bundled demo content lives once installed
func (p *Package) DemoDir(root string) string {
	return filepath.Join(p.Destination(root), DemoDirName)
}
