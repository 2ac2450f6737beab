// Package filter decides which entries of a source checkout belong in an
// exported tarball.
package filter

import (
	"path/filepath"
	"strings"

	"github.com/qqvirus/chromium-source-tarball/internal/utils"
)

// Lists holds the static path classification lists. All entries are relative
// to the source directory, using forward slashes.
type Lists struct {
	// TestDataDirs are excluded entirely (whole subtree) when stripping.
	TestDataDirs []string

	// NonessentialDirs lose their regular files when stripping, except for
	// protected build-system files.
	NonessentialDirs []string

	// TestDirs are treated like NonessentialDirs during the filtered pass.
	// The exporter can add them back verbatim when test data is requested.
	TestDirs []string
}

// Filter implements the per-entry inclusion decision for an export run. The
// lists and the strip flag are fixed at construction and the filter carries no
// other state, so a single Filter can be shared freely.
type Filter struct {
	sourceDir string
	strip     bool

	testDataDirs []string
	strippedDirs []string
}

// New returns a Filter rooted at sourceDir. When strip is false only version
// control metadata is excluded.
func New(sourceDir string, strip bool, lists Lists) *Filter {
	f := &Filter{
		sourceDir: filepath.Clean(sourceDir),
		strip:     strip,
	}
	for _, dir := range lists.TestDataDirs {
		f.testDataDirs = append(f.testDataDirs, filepath.Join(f.sourceDir, dir))
	}
	// Test dirs count as non-essential for the filtered pass; the verbatim
	// re-add happens outside the filter.
	for _, dir := range utils.RemoveDuplicates(append(append([]string{}, lists.NonessentialDirs...), lists.TestDirs...)) {
		f.strippedDirs = append(f.strippedDirs, filepath.Join(f.sourceDir, dir))
	}
	return f
}

// ShouldExclude reports whether the entry at path must be left out of the
// archive. path is an absolute path under the filter's source directory and
// isFile tells a regular file apart from a directory or symlink.
func (f *Filter) ShouldExclude(path string, isFile bool) bool {
	if underVCSMetadata(path) {
		return true
	}
	if !f.strip {
		return false
	}
	if strings.Contains(path, changelogMarker) {
		return true
	}
	for _, dir := range f.testDataDirs {
		if underDir(path, dir) {
			return true
		}
	}
	if !isFile {
		return false
	}
	for _, dir := range f.strippedDirs {
		if underDir(path, dir) {
			return !isProtectedFile(filepath.Base(path))
		}
	}
	return false
}

// underVCSMetadata reports whether any segment of path names a version
// control metadata directory. This covers both the metadata directory itself
// and everything below it.
func underVCSMetadata(path string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		for _, name := range vcsDirNames {
			if seg == name {
				return true
			}
		}
	}
	return false
}

// underDir is a directory-boundary-aware prefix test: it matches dir itself
// and any descendant, but not siblings sharing a name prefix.
func underDir(path, dir string) bool {
	p := filepath.ToSlash(path)
	d := filepath.ToSlash(dir)
	return p == d || strings.HasPrefix(p, d+"/")
}

func isProtectedFile(name string) bool {
	for _, marker := range protectedMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
