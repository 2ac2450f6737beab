// Package tarball streams a filtered directory tree into a tar archive.
package tarball

import (
	"archive/tar"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// ExcludeFunc decides whether the entry at an absolute path is left out of
// the archive. isFile is true for regular files only.
type ExcludeFunc func(path string, isFile bool) bool

// Writer owns an open tar file for the duration of an export run. It is not
// safe for concurrent use; the export is strictly sequential anyway.
type Writer struct {
	file    *os.File
	tw      *tar.Writer
	exclude ExcludeFunc

	added   int
	skipped int
	bytes   int64
}

// Create opens path for writing and returns a Writer applying exclude on
// every entry added through AddTree. A nil exclude includes everything.
func Create(path string, exclude ExcludeFunc) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "creating archive")
	}
	return &Writer{
		file:    f,
		tw:      tar.NewWriter(f),
		exclude: exclude,
	}, nil
}

// Added returns the number of entries written so far.
func (w *Writer) Added() int { return w.added }

// Skipped returns the number of entries rejected by the exclude function.
func (w *Writer) Skipped() int { return w.skipped }

// Bytes returns the total size of regular file content written so far.
func (w *Writer) Bytes() int64 { return w.bytes }

// AddTree recursively adds root to the archive, remapping each entry's
// relative path under arcname. Every entry passes through the exclude
// function. An excluded directory's subtree is pruned; the exclusion rules
// that apply to directories are closed under descendants, so pruning never
// changes an inclusion decision.
func (w *Writer) AddTree(root, arcname string) error {
	return w.addTree(root, arcname, w.exclude)
}

// AddVerbatim adds root recursively with no filtering at all. Used for the
// test-data directories that are bundled alongside a stripped archive.
func (w *Writer) AddVerbatim(root, arcname string) error {
	return w.addTree(root, arcname, nil)
}

func (w *Writer) addTree(root, arcname string, exclude ExcludeFunc) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walking %s", path)
		}
		if exclude != nil && exclude(path, d.Type().IsRegular()) {
			w.skipped++
			log.Debugf("skipping %s", path)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := arcname
		if rel != "." {
			name = filepath.ToSlash(filepath.Join(arcname, rel))
		}
		return w.writeEntry(path, name, d)
	})
}

func (w *Writer) writeEntry(path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return errors.Wrapf(err, "stat %s", path)
	}

	link := ""
	if info.Mode()&fs.ModeSymlink != 0 {
		if link, err = os.Readlink(path); err != nil {
			return errors.Wrapf(err, "readlink %s", path)
		}
	}

	hdr, err := tar.FileInfoHeader(info, link)
	if err != nil {
		return errors.Wrapf(err, "header for %s", path)
	}
	hdr.Name = name
	if info.IsDir() {
		hdr.Name += "/"
	}
	if err := w.tw.WriteHeader(hdr); err != nil {
		return errors.Wrapf(err, "writing header for %s", path)
	}

	if info.Mode().IsRegular() {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, "opening %s", path)
		}
		n, err := io.Copy(w.tw, f)
		f.Close()
		if err != nil {
			return errors.Wrapf(err, "archiving %s", path)
		}
		w.bytes += n
	}

	w.added++
	return nil
}

// Close flushes the tar stream and closes the underlying file. It must run
// before any external compressor touches the file.
func (w *Writer) Close() error {
	if err := w.tw.Close(); err != nil {
		w.file.Close()
		return errors.Wrap(err, "closing archive")
	}
	return errors.Wrap(w.file.Close(), "closing archive")
}
