package filesystem

import (
	"io"
	"os"
	"path/filepath"

	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// FileOps bundles the recursive helpers used outside the install
// transaction proper.
type FileOps struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// NewFileOps returns FileOps backed by the OS filesystem
func NewFileOps() *FileOps {
	return NewFileOpsWithFs(afero.NewOsFs())
}

// NewFileOpsWithFs returns FileOps backed by the given afero filesystem
func NewFileOpsWithFs(fs afero.Fs) *FileOps {
	return &FileOps{
		fs:     fs,
		logger: logging.GetLogger("filesystem.fileops"),
	}
}

// MakeDir creates path and any missing parents
func (o *FileOps) MakeDir(path string) error {
	if err := o.fs.MkdirAll(path, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", path)
	}
	return nil
}

// RecursiveDelete removes path and everything below it. A missing path is
// not an error.
func (o *FileOps) RecursiveDelete(path string) error {
	if err := o.fs.RemoveAll(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to delete %s", path)
	}
	o.logger.Debug().Str("path", path).Msg("Deleted")
	return nil
}

// RecursiveCopy copies the contents of src into dst, merging with and
// overwriting whatever dst already holds.
func (o *FileOps) RecursiveCopy(src, dst string) error {
	info, err := o.fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "cannot read copy source %s", src)
	}
	if !info.IsDir() {
		return o.copyFile(src, dst, info.Mode())
	}

	count := 0
	err = afero.Walk(o.fs, src, func(path string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case fi.IsDir():
			return o.fs.MkdirAll(target, fi.Mode().Perm()|0700)
		case fi.Mode()&os.ModeSymlink != 0:
			return o.copySymlink(path, target)
		default:
			count++
			return o.copyFile(path, target, fi.Mode())
		}
	})
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopy, "failed to copy %s to %s", src, dst)
	}

	o.logger.Debug().Str("src", src).Str("dst", dst).Int("files", count).Msg("Copied tree")
	return nil
}

func (o *FileOps) copyFile(src, dst string, mode os.FileMode) error {
	in, err := o.fs.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := o.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := o.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func (o *FileOps) copySymlink(src, dst string) error {
	linker, ok := o.fs.(afero.Symlinker)
	if !ok {
		o.logger.Warn().Str("path", src).Msg("Filesystem cannot copy symlinks, skipping")
		return nil
	}
	target, err := linker.ReadlinkIfPossible(src)
	if err != nil {
		return err
	}
	_ = o.fs.Remove(dst)
	return linker.SymlinkIfPossible(target, dst)
}
