package filter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testLists() Lists {
	return Lists{
		TestDataDirs:     []string{"v8/test"},
		NonessentialDirs: []string{"data", "third_party/hunspell/tests"},
		TestDirs:         []string{"chrome/test/data", "net/data"},
	}
}

func TestShouldExclude(t *testing.T) {
	const src = "/checkout/src"

	tests := []struct {
		name    string
		strip   bool
		path    string
		isFile  bool
		exclude bool
	}{
		{
			name:    "git metadata without stripping",
			strip:   false,
			path:    src + "/.git/config",
			isFile:  true,
			exclude: true,
		},
		{
			name:    "svn metadata with stripping",
			strip:   true,
			path:    src + "/base/.svn/entries",
			isFile:  true,
			exclude: true,
		},
		{
			name:    "git directory itself",
			strip:   false,
			path:    src + "/.git",
			isFile:  false,
			exclude: true,
		},
		{
			name:    "regular source file",
			strip:   true,
			path:    src + "/base/base.cc",
			isFile:  true,
			exclude: false,
		},
		{
			name:    "nonessential file without stripping",
			strip:   false,
			path:    src + "/data/foo.txt",
			isFile:  true,
			exclude: false,
		},
		{
			name:    "changelog when stripping",
			strip:   true,
			path:    src + "/third_party/WebKit/ChangeLog",
			isFile:  true,
			exclude: true,
		},
		{
			name:    "changelog without stripping",
			strip:   false,
			path:    src + "/third_party/WebKit/ChangeLog",
			isFile:  true,
			exclude: false,
		},
		{
			name:    "test data subtree file",
			strip:   true,
			path:    src + "/v8/test/mjsunit/array.js",
			isFile:  true,
			exclude: true,
		},
		{
			name:    "test data subtree directory",
			strip:   true,
			path:    src + "/v8/test/mjsunit",
			isFile:  false,
			exclude: true,
		},
		{
			name:    "protected file under test data subtree still excluded",
			strip:   true,
			path:    src + "/v8/test/BUILD.gn",
			isFile:  true,
			exclude: true,
		},
		{
			name:    "nonessential file when stripping",
			strip:   true,
			path:    src + "/data/foo.txt",
			isFile:  true,
			exclude: true,
		},
		{
			name:    "protected gyp file when stripping",
			strip:   true,
			path:    src + "/data/foo.gyp",
			isFile:  true,
			exclude: false,
		},
		{
			name:    "protected gn file when stripping",
			strip:   true,
			path:    src + "/chrome/test/data/BUILD.gn",
			isFile:  true,
			exclude: false,
		},
		{
			name:    "protected isolate file when stripping",
			strip:   true,
			path:    src + "/net/data/net_unittests.isolate",
			isFile:  true,
			exclude: false,
		},
		{
			name:    "protected grd file when stripping",
			strip:   true,
			path:    src + "/data/resources.grd",
			isFile:  true,
			exclude: false,
		},
		{
			name:    "nonessential directory survives stripping",
			strip:   true,
			path:    src + "/data",
			isFile:  false,
			exclude: false,
		},
		{
			name:    "test dir file when stripping",
			strip:   true,
			path:    src + "/net/data/ssl/cert.pem",
			isFile:  true,
			exclude: true,
		},
		{
			name:    "sibling sharing a name prefix",
			strip:   true,
			path:    src + "/database/schema.sql",
			isFile:  true,
			exclude: false,
		},
		{
			name:    "file named like the list entry",
			strip:   true,
			path:    src + "/data2",
			isFile:  true,
			exclude: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(src, tt.strip, testLists())
			require.Equal(t, tt.exclude, f.ShouldExclude(tt.path, tt.isFile))
		})
	}
}

func TestShouldExcludeNothingWithoutStripping(t *testing.T) {
	const src = "/checkout/src"
	f := New(src, false, testLists())

	for _, path := range []string{
		src + "/data/foo.txt",
		src + "/v8/test/mjsunit/array.js",
		src + "/chrome/test/data/page.html",
		src + "/third_party/hunspell/tests/words.dic",
	} {
		require.False(t, f.ShouldExclude(path, true), "expected %s to be included", path)
	}
}

func TestDefaultListsAreDisjointFromVCSNames(t *testing.T) {
	lists := DefaultLists()
	all := append(append(append([]string{}, lists.TestDataDirs...), lists.NonessentialDirs...), lists.TestDirs...)
	require.NotEmpty(t, all)
	for _, dir := range all {
		require.NotContains(t, dir, ".git")
		require.NotContains(t, dir, ".svn")
	}
}
