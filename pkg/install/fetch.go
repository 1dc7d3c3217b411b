package install

import (
	"context"
	"net/url"
	"path"
	"path/filepath"

	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/arthur-debert/gpm/pkg/paths"
	"github.com/arthur-debert/gpm/pkg/types"
	"github.com/google/uuid"
)

// DownloadLabel prefixes the in-place download progress line
const DownloadLabel = "  |- Downloading package..."

// Fetched is a downloaded archive waiting for placement
type Fetched struct {
	// Archive is the downloaded file
	Archive string
	// Dir is the run-unique directory holding Archive
	Dir string
}

// ArchiveName is the local file name for a package download: the slug
// followed by the last segment of the archive URL.
func ArchiveName(pkg *types.Package) string {
	p := pkg.ZipballURL
	if u, err := url.Parse(pkg.ZipballURL); err == nil && u.Path != "" {
		p = u.Path
	}
	return pkg.Slug + path.Base(p)
}

// Fetch downloads the package archive into a fresh temporary directory
// under the cache dir. Nothing is created on disk if the download fails.
func (t *Transaction) Fetch(ctx context.Context, pkg *types.Package) (*Fetched, error) {
	if pkg.ZipballURL == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "package %s has no download URL", pkg.Slug)
	}

	data, err := t.transfer.Get(ctx, pkg.ZipballURL, func(percent int) {
		t.reporter.Progress(DownloadLabel, percent)
	})
	if err != nil {
		return nil, err
	}

	dir := paths.TempDownloadDir(t.cacheDir, t.newToken())
	if err := t.fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}

	archive := filepath.Join(dir, ArchiveName(pkg))
	if err := t.fs.WriteFile(archive, data, 0644); err != nil {
		t.removeTemp(dir)
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", archive)
	}

	t.logger.Debug().Str("package", pkg.Slug).Str("archive", archive).Int("bytes", len(data)).Msg("Archive fetched")
	return &Fetched{Archive: archive, Dir: dir}, nil
}

func (t *Transaction) removeTemp(dir string) {
	if err := t.ops.RecursiveDelete(dir); err != nil {
		t.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to remove temporary download dir")
	}
}

func newUUIDToken() string {
	return uuid.NewString()
}
