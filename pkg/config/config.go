package config

import (
	"github.com/arthur-debert/gpm/pkg/errors"
)

// SymlinkMode controls whether development checkouts are symlinked
type SymlinkMode string

const (
	// SymlinksAsk asks once per run when development roots are configured
	SymlinksAsk SymlinkMode = "ask"
	// SymlinksAlways uses symlinks when available without asking
	SymlinksAlways SymlinkMode = "always"
	// SymlinksNever always downloads
	SymlinksNever SymlinkMode = "never"
)

// PlatformConfig describes the platform packages are installed into
type PlatformConfig struct {
	// Name is the dependency name that denotes the platform itself
	Name string `koanf:"name" toml:"name"`
	// Version overrides the version detected from the destination
	Version string `koanf:"version" toml:"version"`
}

// Config is the run-wide configuration
type Config struct {
	// Destination is the root packages are installed under
	Destination string `koanf:"destination" toml:"destination"`
	// DevRoots are searched in order for local source checkouts
	DevRoots []string `koanf:"dev_roots" toml:"dev_roots"`
	// DevConfig is a YAML file listing development roots, used when
	// DevRoots is empty
	DevConfig string `koanf:"dev_config" toml:"dev_config"`
	// AssumeYes answers yes (or the safest choice) instead of prompting
	AssumeYes bool `koanf:"assume_yes" toml:"assume_yes"`
	// ForceRefresh re-fetches the package index
	ForceRefresh bool `koanf:"force_refresh" toml:"force_refresh"`
	// Symlinks selects the symlink preference
	Symlinks SymlinkMode `koanf:"symlinks" toml:"symlinks"`
	// Index is the package index location, a URL or a local file
	Index string `koanf:"index" toml:"index"`
	// CacheDir holds the index cache and temporary downloads
	CacheDir string `koanf:"cache_dir" toml:"cache_dir"`
	// Platform describes the target platform
	Platform PlatformConfig `koanf:"platform" toml:"platform"`
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Destination: ".",
		DevRoots:    []string{},
		Symlinks:    SymlinksAsk,
		Platform: PlatformConfig{
			Name: "grav",
		},
	}
}

// Overrides are command-line values; nil fields leave the loaded value alone
type Overrides struct {
	Destination  *string
	AssumeYes    *bool
	ForceRefresh *bool
	Symlinks     *SymlinkMode
	Index        *string
}

// WithOverrides returns a copy of c with the non-nil overrides applied
func (c Config) WithOverrides(o Overrides) Config {
	out := c
	out.DevRoots = append([]string(nil), c.DevRoots...)
	if o.Destination != nil {
		out.Destination = *o.Destination
	}
	if o.AssumeYes != nil {
		out.AssumeYes = *o.AssumeYes
	}
	if o.ForceRefresh != nil {
		out.ForceRefresh = *o.ForceRefresh
	}
	if o.Symlinks != nil {
		out.Symlinks = *o.Symlinks
	}
	if o.Index != nil {
		out.Index = *o.Index
	}
	return out
}

// Validate checks values that cannot be fixed up silently
func (c Config) Validate() error {
	switch c.Symlinks {
	case SymlinksAsk, SymlinksAlways, SymlinksNever:
	default:
		return errors.Newf(errors.ErrConfigValid, "invalid symlinks mode %q (want ask, always or never)", c.Symlinks).
			WithDetail("symlinks", string(c.Symlinks))
	}
	if c.Destination == "" {
		return errors.New(errors.ErrConfigValid, "destination must not be empty")
	}
	if c.Platform.Name == "" {
		return errors.New(errors.ErrConfigValid, "platform name must not be empty")
	}
	return nil
}
