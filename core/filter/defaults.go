package filter

// Directory names holding version control metadata. Entries under these are
// never exported, independent of any other option.
var vcsDirNames = []string{".git", ".svn"}

// Paths matching this marker are WebKit changelog files. They take a lot of
// space in the compressed tarball for no benefit to downstream packagers.
const changelogMarker = "ChangeLog"

// Protected build-system file markers. Files under stripped directories are
// kept when their name carries one of these, so that a gn/gyp run against the
// stripped tree still works.
var protectedMarkers = []string{"gyp", "gn", "isolate", "grd"}

// TestDataDirs are dropped wholesale (files and subdirectories) when
// stripping is enabled. These trees are pure test input with no build files
// worth preserving.
var TestDataDirs = []string{
	"third_party/blink/web_tests",
	"third_party/catapult/tracing/test_data",
	"third_party/breakpad/breakpad/src/processor/testdata",
	"v8/test",
}

// NonessentialDirs lose their regular files (protected build files excepted)
// when stripping is enabled. The directory skeleton and build configuration
// stay in place.
var NonessentialDirs = []string{
	"android_webview",
	"buildtools/reclient",
	"chrome/android",
	"chromecast",
	"data",
	"ios",
	"native_client",
	"native_client_sdk",
	"third_party/android_platform",
	"third_party/angle/third_party/VK-GL-CTS",
	"third_party/apache-linux",
	"third_party/blink/manual_tests",
	"third_party/blink/perf_tests",
	"third_party/hunspell/tests",
	"third_party/hunspell_dictionaries",
	"third_party/jdk/current",
	"third_party/jdk/extras",
	"third_party/liblouis/src/tests/braille-specs",
	"third_party/xdg-utils/tests",
}

// TestDirs are re-added verbatim under the archive basename when test data is
// requested. They also count as non-essential during the filtered pass.
var TestDirs = []string{
	"chrome/test/data",
	"content/test/data",
	"courgette/testdata",
	"extensions/test/data",
	"media/test/data",
	"net/data",
}

// DefaultLists returns the stock classification lists used for Chromium
// checkouts.
func DefaultLists() Lists {
	return Lists{
		TestDataDirs:     TestDataDirs,
		NonessentialDirs: NonessentialDirs,
		TestDirs:         TestDirs,
	}
}
