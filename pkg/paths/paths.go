package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for gpm
	EnvConfigDir = "GPM_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for gpm
	EnvCacheDir = "GPM_CACHE_DIR"
)

// Fixed names
const (
	// AppDirName is the directory name for gpm-specific files
	AppDirName = "gpm"

	// ConfigFileName is the application config file looked up in the config dir
	ConfigFileName = "gpm.toml"

	// DevConfigFileName is the local development roots file
	DevConfigFileName = "dev.yaml"

	// TempDirName holds per-run download directories under the cache dir
	TempDirName = "tmp"

	// TempDirPrefix prefixes every run-unique download directory
	TempDirPrefix = "gpm-"

	// UserDir is the live user area under a destination root
	UserDir = "user"

	// PagesDir is the pages folder under UserDir
	PagesDir = "pages"

	// SiteCacheDir is the destination's cache folder cleared after a run
	SiteCacheDir = "cache"
)

// Paths holds the resolved application directories
type Paths struct {
	configDir string
	cacheDir  string
	stateDir  string
}

// New resolves application directories, honoring environment overrides
func New() *Paths {
	p := &Paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.cacheDir = ExpandHome(dir)
	} else {
		p.cacheDir = filepath.Join(xdg.CacheHome, AppDirName)
	}

	p.stateDir = filepath.Join(xdg.StateHome, AppDirName)

	return p
}

// ConfigDir returns the XDG config directory for gpm
func (p *Paths) ConfigDir() string { return p.configDir }

// CacheDir returns the XDG cache directory for gpm
func (p *Paths) CacheDir() string { return p.cacheDir }

// StateDir returns the XDG state directory for gpm
func (p *Paths) StateDir() string { return p.stateDir }

// ConfigFile returns the default application config file path
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// DevConfigFile returns the default development roots file path
func (p *Paths) DevConfigFile() string {
	return filepath.Join(p.configDir, DevConfigFileName)
}

// TempDownloadDir returns the run-unique download directory for token
// below cacheDir.
func TempDownloadDir(cacheDir, token string) string {
	return filepath.Join(cacheDir, TempDirName, TempDirPrefix+token)
}

// UserPath returns the live user directory of a destination root
func UserPath(root string) string {
	return filepath.Join(root, UserDir)
}

// PagesPath returns the live pages directory of a destination root
func PagesPath(root string) string {
	return filepath.Join(root, UserDir, PagesDir)
}

// SiteCachePath returns the cache directory of a destination root
func SiteCachePath(root string) string {
	return filepath.Join(root, SiteCacheDir)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
