// Package core orchestrates a source tarball export run: version stamping,
// the filtered archive pass, optional verbatim test data, and compression.
package core

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/alexflint/go-filemutex"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/qqvirus/chromium-source-tarball/core/filter"
	"github.com/qqvirus/chromium-source-tarball/core/runner"
	"github.com/qqvirus/chromium-source-tarball/core/tarball"
)

// PrereqRunner refreshes the version-stamp files in the source checkout
// before archiving starts.
type PrereqRunner interface {
	Run(ctx context.Context) error
}

// Compressor turns the finished tar file into its distributable form and
// returns the resulting path.
type Compressor interface {
	Compress(ctx context.Context, archivePath string) (string, error)
}

// Options configures a single export run.
type Options struct {
	// SourceDir is the checkout to export.
	SourceDir string

	// Output is the output path without the .tar suffix.
	Output string

	// Basename is the archive-internal root directory name. Defaults to the
	// base name of Output.
	Basename string

	// RemoveNonessentialFiles enables the stripping rules.
	RemoveNonessentialFiles bool

	// IncludeTestData bundles the test directories verbatim under Basename.
	IncludeTestData bool

	// Lists overrides the stock classification lists. Zero value means
	// filter.DefaultLists.
	Lists filter.Lists

	// Prereqs and Compress override the external collaborators. Nil means
	// the lastchange helpers and xz -9.
	Prereqs  PrereqRunner
	Compress Compressor
}

// Result summarizes a completed export.
type Result struct {
	ArchivePath string
	Basename    string
	Added       int
	Skipped     int
	Bytes       int64
	Duration    time.Duration
}

// Export runs the whole sequence. Any failure aborts the remaining steps; the
// archive file handle is closed on every exit path before the compressor is
// invoked.
func Export(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()

	if info, err := os.Stat(opts.SourceDir); err != nil || !info.IsDir() {
		return nil, &ConfigError{Path: opts.SourceDir}
	}

	basename := opts.Basename
	if basename == "" {
		basename = filepath.Base(opts.Output)
	}

	// A second export racing to the same output would interleave writes into
	// the tar before xz ever sees it.
	lockPath := opts.Output + ".lock"
	lock, err := filemutex.New(lockPath)
	if err != nil {
		return nil, errors.Wrap(err, "creating output lock")
	}
	if err := lock.Lock(); err != nil {
		return nil, errors.Wrap(err, "locking output")
	}
	defer func() {
		if err := lock.Unlock(); err == nil {
			os.Remove(lockPath)
		}
	}()

	prereqs := opts.Prereqs
	if prereqs == nil {
		prereqs = DefaultPrereqs(opts.SourceDir)
	}
	if err := prereqs.Run(ctx); err != nil {
		return nil, err
	}

	tarPath := opts.Output + ".tar"
	f := filter.New(opts.SourceDir, opts.RemoveNonessentialFiles, opts.lists())

	w, err := tarball.Create(tarPath, f.ShouldExclude)
	if err != nil {
		return nil, err
	}
	closed := false
	defer func() {
		if !closed {
			w.Close()
		}
	}()

	log.Debugf("archiving %s as %s", opts.SourceDir, basename)
	if err := w.AddTree(opts.SourceDir, basename); err != nil {
		return nil, err
	}

	if opts.IncludeTestData {
		for _, dir := range opts.lists().TestDirs {
			log.Debugf("bundling test data %s", dir)
			err := w.AddVerbatim(filepath.Join(opts.SourceDir, dir), path.Join(basename, filepath.ToSlash(dir)))
			if err != nil {
				return nil, err
			}
		}
	}

	added, skipped, bytes := w.Added(), w.Skipped(), w.Bytes()
	closed = true
	if err := w.Close(); err != nil {
		return nil, err
	}

	compress := opts.Compress
	if compress == nil {
		compress = XZCompressor{}
	}
	archivePath, err := compress.Compress(ctx, tarPath)
	if err != nil {
		return nil, err
	}

	return &Result{
		ArchivePath: archivePath,
		Basename:    basename,
		Added:       added,
		Skipped:     skipped,
		Bytes:       bytes,
		Duration:    time.Since(start),
	}, nil
}

func (o Options) lists() filter.Lists {
	if o.Lists.TestDataDirs == nil && o.Lists.NonessentialDirs == nil && o.Lists.TestDirs == nil {
		return filter.DefaultLists()
	}
	return o.Lists
}

// VersionStampSteps are the helper invocations that refresh the version
// metadata in the checkout. These mirror the commands listed in src/DEPS;
// keep them in sync.
func VersionStampSteps(sourceDir string) []runner.Step {
	return []runner.Step{
		{
			Name:    "lastchange",
			Command: "python3",
			Args:    []string{"build/util/lastchange.py", "-o", "build/util/LASTCHANGE"},
			Dir:     sourceDir,
		},
		{
			Name:    "gpu-lists-version",
			Command: "python3",
			Args: []string{
				"build/util/lastchange.py", "-m", "GPU_LISTS_VERSION",
				"--revision-id-only", "--header", "gpu/config/gpu_lists_version.h",
			},
			Dir: sourceDir,
		},
		{
			Name:    "skia-commit-hash",
			Command: "python3",
			Args: []string{
				"build/util/lastchange.py", "-m", "SKIA_COMMIT_HASH",
				"-s", "third_party/skia", "--header", "skia/ext/skia_commit_hash.h",
			},
			Dir: sourceDir,
		},
	}
}

// DefaultPrereqs runs the lastchange helpers against sourceDir.
func DefaultPrereqs(sourceDir string) PrereqRunner {
	return stampRunner{dir: sourceDir}
}

type stampRunner struct {
	dir string
}

func (r stampRunner) Run(ctx context.Context) error {
	if err := runner.Run(ctx, VersionStampSteps(r.dir)); err != nil {
		return &ExternalToolError{Tool: "version stamping", Err: err}
	}
	return nil
}

// XZCompressor compresses the tar in place with xz -9, the same invocation
// downstream packagers expect.
type XZCompressor struct{}

func (XZCompressor) Compress(ctx context.Context, archivePath string) (string, error) {
	step := runner.Step{Name: "xz", Command: "xz", Args: []string{"-9", archivePath}}
	if err := runner.Run(ctx, []runner.Step{step}); err != nil {
		return "", &ExternalToolError{Tool: "xz", Err: err}
	}
	return archivePath + ".xz", nil
}
