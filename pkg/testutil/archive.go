package testutil

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// sortedNames keeps archive layouts deterministic
func sortedNames(files map[string]string) []string {
	names := make([]string, 0, len(files))
	for n := range files {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ZipBytes builds a zip archive holding files (name -> content)
func ZipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range sortedNames(files) {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, files[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// WriteZip writes a zip archive of files to path
func WriteZip(t *testing.T, path string, files map[string]string) string {
	t.Helper()
	writeBytes(t, path, ZipBytes(t, files))
	return path
}

func tarBytes(t *testing.T, w io.Writer, files map[string]string) {
	t.Helper()

	tw := tar.NewWriter(w)
	for _, name := range sortedNames(files) {
		content := files[name]
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := io.WriteString(tw, content)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
}

// WriteTarGz writes a gzip-compressed tar of files to path
func WriteTarGz(t *testing.T, path string, files map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tarBytes(t, gz, files)
	require.NoError(t, gz.Close())
	writeBytes(t, path, buf.Bytes())
	return path
}

// WriteTarXz writes an xz-compressed tar of files to path
func WriteTarXz(t *testing.T, path string, files map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	require.NoError(t, err)
	tarBytes(t, xw, files)
	require.NoError(t, xw.Close())
	writeBytes(t, path, buf.Bytes())
	return path
}

func writeBytes(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}
