package tarball

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readEntries(t *testing.T, path string) map[string]*tar.Header {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	entries := map[string]*tar.Header{}
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		entries[hdr.Name] = hdr
	}
	return entries
}

func TestAddTree(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "README"), "hello")
	writeFile(t, filepath.Join(src, "base", "base.cc"), "int main() {}")
	writeFile(t, filepath.Join(src, ".git", "config"), "[core]")
	require.NoError(t, os.Symlink("base.cc", filepath.Join(src, "base", "latest.cc")))

	exclude := func(path string, isFile bool) bool {
		return strings.Contains(path, ".git")
	}

	out := filepath.Join(t.TempDir(), "out.tar")
	w, err := Create(out, exclude)
	require.NoError(t, err)
	require.NoError(t, w.AddTree(src, "chromium-1.0"))
	require.NoError(t, w.Close())

	entries := readEntries(t, out)
	require.Contains(t, entries, "chromium-1.0/")
	require.Contains(t, entries, "chromium-1.0/README")
	require.Contains(t, entries, "chromium-1.0/base/")
	require.Contains(t, entries, "chromium-1.0/base/base.cc")
	require.Contains(t, entries, "chromium-1.0/base/latest.cc")
	require.NotContains(t, entries, "chromium-1.0/.git/")
	require.NotContains(t, entries, "chromium-1.0/.git/config")

	require.Equal(t, byte(tar.TypeSymlink), entries["chromium-1.0/base/latest.cc"].Typeflag)
	require.Equal(t, "base.cc", entries["chromium-1.0/base/latest.cc"].Linkname)

	require.Equal(t, 5, w.Added())
	// The pruned .git subtree counts once; its contents are never visited.
	require.Equal(t, 1, w.Skipped())
	require.Equal(t, int64(len("hello")+len("int main() {}")), w.Bytes())
}

func TestAddTreeFileContent(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "AUTHORS"), "The Authors")

	out := filepath.Join(t.TempDir(), "out.tar")
	w, err := Create(out, nil)
	require.NoError(t, err)
	require.NoError(t, w.AddTree(src, "src"))
	require.NoError(t, w.Close())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		require.NoError(t, err)
		if hdr.Name == "src/AUTHORS" {
			content, err := io.ReadAll(tr)
			require.NoError(t, err)
			require.Equal(t, "The Authors", string(content))
			return
		}
	}
}

func TestAddVerbatimBypassesFilter(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "testdata", "big.bin"), "xxxx")

	excludeEverything := func(path string, isFile bool) bool { return true }

	out := filepath.Join(t.TempDir(), "out.tar")
	w, err := Create(out, excludeEverything)
	require.NoError(t, err)
	require.NoError(t, w.AddVerbatim(filepath.Join(src, "testdata"), "src/testdata"))
	require.NoError(t, w.Close())

	entries := readEntries(t, out)
	require.Contains(t, entries, "src/testdata/")
	require.Contains(t, entries, "src/testdata/big.bin")
}

func TestCreateFailsOnBadPath(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "missing", "out.tar"), nil)
	require.Error(t, err)
}
