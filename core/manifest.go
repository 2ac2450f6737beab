package core

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/qqvirus/chromium-source-tarball/core/filter"
	"github.com/qqvirus/chromium-source-tarball/internal/utils"
)

// Manifest returns the repo-relative paths an export with opts would include,
// or skip when excluded is true. Nothing is written; the prereq helpers and
// the compressor are not invoked.
func Manifest(opts Options, excluded bool) ([]string, error) {
	if info, err := os.Stat(opts.SourceDir); err != nil || !info.IsDir() {
		return nil, &ConfigError{Path: opts.SourceDir}
	}

	f := filter.New(opts.SourceDir, opts.RemoveNonessentialFiles, opts.lists())

	var included, skipped []string
	err := filepath.WalkDir(opts.SourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walking %s", path)
		}
		rel, err := filepath.Rel(opts.SourceDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		// No pruning here: the skipped listing needs every descendant of an
		// excluded directory as well.
		if f.ShouldExclude(path, d.Type().IsRegular()) {
			skipped = append(skipped, filepath.ToSlash(rel))
		} else {
			included = append(included, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.IncludeTestData {
		// The verbatim pass re-adds these trees wholesale, overriding any
		// stripping decision made above.
		for _, dir := range opts.lists().TestDirs {
			root := filepath.Join(opts.SourceDir, dir)
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return errors.Wrapf(err, "walking %s", path)
				}
				rel, err := filepath.Rel(opts.SourceDir, path)
				if err != nil {
					return err
				}
				included = append(included, filepath.ToSlash(rel))
				return nil
			})
			if err != nil {
				return nil, err
			}
		}

		skipped = withoutEntriesUnder(skipped, opts.lists().TestDirs)
	}

	if excluded {
		sort.Strings(skipped)
		return skipped, nil
	}

	included = utils.RemoveDuplicates(included)
	sort.Strings(included)
	return included, nil
}

func withoutEntriesUnder(entries []string, dirs []string) []string {
	kept := []string{}
	for _, entry := range entries {
		under := false
		for _, dir := range dirs {
			if entry == dir || strings.HasPrefix(entry, dir+"/") {
				under = true
				break
			}
		}
		if !under {
			kept = append(kept, entry)
		}
	}
	return kept
}
