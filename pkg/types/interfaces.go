package types

import (
	"context"
	"io/fs"
)

// FS is the filesystem interface required for gpm operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Lstat(name string) (fs.FileInfo, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
}

// Confirmer asks the user a yes/no question. Implementations block until the
// question is answered.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Reporter is the append-only status sink for user-facing progress lines.
type Reporter interface {
	// Report writes one complete status line.
	Report(line string)
	// Progress re-renders a single in-place status line. Only the latest
	// value is kept; percent is expected in 0..100.
	Progress(label string, percent int)
}

// InstallOptions carries the per-call parameters of an archive install.
type InstallOptions struct {
	// RelativePath is the install path below the destination root.
	RelativePath string
	// IsTheme marks theme packages.
	IsTheme bool
	// Slug is used to derive a default path when RelativePath is empty.
	Slug string
}

// Installer places archive contents under a destination root.
type Installer interface {
	ValidateDestination(path string, allowed ...DestinationState) error
	Install(archivePath, destRoot string, opts InstallOptions) error
}

// ProgressFunc receives a monotonically non-decreasing percent value.
type ProgressFunc func(percent int)

// Transfer fetches remote content.
type Transfer interface {
	Get(ctx context.Context, url string, onProgress ProgressFunc) ([]byte, error)
}
