package installer

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/arthur-debert/gpm/pkg/destination"
	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/filesystem"
	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/arthur-debert/gpm/pkg/paths"
	"github.com/arthur-debert/gpm/pkg/types"
	"github.com/rs/zerolog"
)

const stagingPrefix = ".gpm-staging-"

// Installer implements types.Installer on the OS filesystem
type Installer struct {
	fs     types.FS
	ops    *filesystem.FileOps
	logger zerolog.Logger
}

// New creates an installer
func New() *Installer {
	return &Installer{
		fs:     filesystem.NewOS(),
		ops:    filesystem.NewFileOps(),
		logger: logging.GetLogger("installer"),
	}
}

var _ types.Installer = (*Installer)(nil)

// ValidateDestination fails unless the state of path is one of allowed.
// Existing destinations must also resolve to a directory.
func (i *Installer) ValidateDestination(path string, allowed ...types.DestinationState) error {
	state := destination.Check(i.fs, path)

	permitted := false
	for _, a := range allowed {
		if a == state {
			permitted = true
			break
		}
	}

	if !permitted {
		switch state {
		case types.DestAbsent:
			return errors.Newf(errors.ErrDestNotFound, "destination %s does not exist", path).
				WithDetail("path", path)
		case types.DestSymlinked:
			return errors.Newf(errors.ErrDestIsLink, "destination %s is a symbolic link", path).
				WithDetail("path", path)
		default:
			return errors.Newf(errors.ErrDestExists, "destination %s already exists", path).
				WithDetail("path", path)
		}
	}

	if state != types.DestAbsent {
		info, err := i.fs.Stat(path)
		if err != nil || !info.IsDir() {
			return errors.Newf(errors.ErrInvalidDestination, "destination %s is not a directory", path).
				WithDetail("path", path)
		}
	}
	return nil
}

// IsPlatformInstance reports whether root looks like a site: it must
// contain the user directory.
func (i *Installer) IsPlatformInstance(root string) bool {
	info, err := i.fs.Stat(paths.UserPath(root))
	return err == nil && info.IsDir()
}

var versionDefine = regexp.MustCompile(`define\(\s*'GRAV_VERSION'\s*,\s*'([^']+)'\s*\)`)

// DetectPlatformVersion reads the running platform version from
// system/defines.php under root. An empty string means it is unknown.
func (i *Installer) DetectPlatformVersion(root string) string {
	data, err := i.fs.ReadFile(filepath.Join(root, "system", "defines.php"))
	if err != nil {
		return ""
	}
	m := versionDefine.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return string(m[1])
}

// TargetPath returns where opts install below destRoot
func TargetPath(destRoot string, opts types.InstallOptions) string {
	rel := opts.RelativePath
	if rel == "" {
		kind := "plugins"
		if opts.IsTheme {
			kind = "themes"
		}
		rel = filepath.Join(paths.UserDir, kind, opts.Slug)
	}
	return filepath.Join(destRoot, filepath.FromSlash(rel))
}

// Install extracts archivePath and moves its contents to the package's
// install path under destRoot, replacing whatever was there.
func (i *Installer) Install(archivePath, destRoot string, opts types.InstallOptions) error {
	target := TargetPath(destRoot, opts)
	logger := i.logger.With().Str("archive", archivePath).Str("target", target).Logger()
	done := logging.LogOperationStart(logger, "install archive")
	defer done()

	if opts.RelativePath == "" && opts.Slug == "" {
		return errors.New(errors.ErrInvalidInput, "install path or slug required")
	}

	parent := filepath.Dir(target)
	if err := i.fs.MkdirAll(parent, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", parent)
	}

	staging, err := os.MkdirTemp(parent, stagingPrefix)
	if err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create staging dir in %s", parent)
	}
	defer func() {
		if err := i.ops.RecursiveDelete(staging); err != nil {
			logger.Warn().Err(err).Str("staging", staging).Msg("Failed to remove staging dir")
		}
	}()

	if err := extract(archivePath, staging); err != nil {
		return err
	}

	src, err := packageRoot(staging)
	if err != nil {
		return err
	}

	switch destination.Check(i.fs, target) {
	case types.DestSymlinked:
		if err := i.fs.Remove(target); err != nil {
			return errors.Wrapf(err, errors.ErrZipExtract, "failed to remove link %s", target)
		}
	case types.DestOccupied:
		if err := i.ops.RecursiveDelete(target); err != nil {
			return errors.Wrapf(err, errors.ErrZipExtract, "failed to remove %s", target)
		}
	}

	if err := i.fs.Rename(src, target); err != nil {
		return errors.Wrapf(err, errors.ErrZipExtract, "failed to move package into %s", target)
	}

	logger.Info().Msg("Package installed")
	return nil
}

// packageRoot strips a single wrapping directory, the usual layout of
// release archives.
func packageRoot(staging string) (string, error) {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrZipExtract, "failed to read extracted files")
	}
	if len(entries) == 0 {
		return "", errors.New(errors.ErrZipExtract, "archive is empty")
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(staging, entries[0].Name()), nil
	}

	// Loose files: move them together under a fresh directory so the
	// rename below still targets a single path.
	wrapped := filepath.Join(staging, ".root")
	if err := os.Mkdir(wrapped, 0755); err != nil {
		return "", errors.Wrap(err, errors.ErrDirCreate, "failed to prepare package root")
	}
	for _, e := range entries {
		if err := os.Rename(filepath.Join(staging, e.Name()), filepath.Join(wrapped, e.Name())); err != nil {
			return "", errors.Wrap(err, errors.ErrZipExtract, "failed to prepare package root")
		}
	}
	return wrapped, nil
}
