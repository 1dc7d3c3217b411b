package installer

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/gpm/pkg/errors"
	"github.com/ulikunitz/xz"
)

// Format is an archive container format
type Format string

const (
	FormatUnknown Format = ""
	FormatZip     Format = "zip"
	FormatTarGz   Format = "tar.gz"
	FormatTarXz   Format = "tar.xz"
)

var (
	zipMagic  = []byte("PK\x03\x04")
	gzipMagic = []byte{0x1f, 0x8b}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

// DetectFormat sniffs the archive header, falling back to the file name
func DetectFormat(name string, header []byte) Format {
	switch {
	case bytes.HasPrefix(header, zipMagic):
		return FormatZip
	case bytes.HasPrefix(header, gzipMagic):
		return FormatTarGz
	case bytes.HasPrefix(header, xzMagic):
		return FormatTarXz
	}

	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return FormatTarXz
	}
	return FormatUnknown
}

func extract(archivePath, dest string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrZipOpen, "unable to open %s", archivePath)
	}
	defer func() { _ = f.Close() }()

	br := bufio.NewReader(f)
	header, _ := br.Peek(6)

	switch DetectFormat(archivePath, header) {
	case FormatZip:
		return extractZip(archivePath, dest)
	case FormatTarGz:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return errors.Wrapf(err, errors.ErrZipOpen, "unable to open %s", archivePath)
		}
		defer func() { _ = gz.Close() }()
		return extractTar(gz, dest)
	case FormatTarXz:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return errors.Wrapf(err, errors.ErrZipOpen, "unable to open %s", archivePath)
		}
		return extractTar(xzr, dest)
	}
	return errors.Newf(errors.ErrZipOpen, "unrecognized archive format: %s", filepath.Base(archivePath))
}

// safeJoin resolves name inside root and rejects paths escaping it
func safeJoin(root, name string) (string, error) {
	cleaned := filepath.Join(root, filepath.FromSlash(name))
	if cleaned != root && !strings.HasPrefix(cleaned, root+string(os.PathSeparator)) {
		return "", errors.Newf(errors.ErrZipExtract, "illegal path in archive: %s", name).
			WithDetail("entry", name)
	}
	return cleaned, nil
}

func extractZip(archivePath, dest string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrZipOpen, "unable to open %s", archivePath)
	}
	defer func() { _ = zr.Close() }()

	for _, f := range zr.File {
		target, err := safeJoin(dest, f.Name)
		if err != nil {
			return err
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrZipExtract, "failed to create %s", f.Name)
			}
		case mode&os.ModeSymlink != 0:
			rc, err := f.Open()
			if err != nil {
				return errors.Wrapf(err, errors.ErrZipExtract, "failed to read %s", f.Name)
			}
			link, err := io.ReadAll(rc)
			_ = rc.Close()
			if err != nil {
				return errors.Wrapf(err, errors.ErrZipExtract, "failed to read %s", f.Name)
			}
			if err := writeSymlink(dest, target, string(link)); err != nil {
				return err
			}
		default:
			rc, err := f.Open()
			if err != nil {
				return errors.Wrapf(err, errors.ErrZipExtract, "failed to read %s", f.Name)
			}
			err = writeFile(target, rc, mode.Perm())
			_ = rc.Close()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func extractTar(r io.Reader, dest string) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, errors.ErrZipExtract, "corrupt archive")
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrZipExtract, "failed to create %s", hdr.Name)
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, os.FileMode(hdr.Mode).Perm()); err != nil {
				return err
			}
		case tar.TypeSymlink:
			if err := writeSymlink(dest, target, hdr.Linkname); err != nil {
				return err
			}
		default:
			// pax headers, hard links and devices carry nothing we install
		}
	}
}

func writeFile(target string, r io.Reader, perm os.FileMode) error {
	if perm == 0 {
		perm = 0644
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrZipExtract, "failed to create %s", filepath.Dir(target))
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrZipExtract, "failed to write %s", target)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrZipExtract, "failed to write %s", target)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrZipExtract, "failed to write %s", target)
	}
	return nil
}

// writeSymlink only accepts relative links that stay inside root
func writeSymlink(root, target, link string) error {
	if filepath.IsAbs(link) {
		return errors.Newf(errors.ErrZipExtract, "illegal absolute link in archive: %s", link)
	}
	resolved := filepath.Join(filepath.Dir(target), link)
	if resolved != root && !strings.HasPrefix(resolved, root+string(os.PathSeparator)) {
		return errors.Newf(errors.ErrZipExtract, "illegal link in archive: %s", link).
			WithDetail("entry", target)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrZipExtract, "failed to create %s", filepath.Dir(target))
	}
	if err := os.Symlink(link, target); err != nil {
		return errors.Wrapf(err, errors.ErrZipExtract, "failed to create link %s", target)
	}
	return nil
}
