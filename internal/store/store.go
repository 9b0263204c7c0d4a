// Package store reads and writes archive files and reports.
//
// Conventions:
//   - Load never returns an archive that failed validation
//   - Every write goes to a temporary sibling first and is renamed into
//     place, so a failed run never leaves a partial file behind
//   - Input-access failures are classified as errs.ErrNotFound or
//     errs.ErrPermission and always name the path
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"playlist-archiver/internal/archive"
	"playlist-archiver/internal/errs"
	"playlist-archiver/internal/validate"
)

// Load reads, validates and decodes the archive at path.
func Load(path string) (*archive.Archive, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}
	return Decode(filepath.Base(path), b)
}

// Decode validates and decodes an archive document. name is used in error
// messages only.
func Decode(name string, b []byte) (*archive.Archive, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", name, errs.ErrMalformedJSON, err)
	}
	if err := validate.Archive(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	var a archive.Archive
	if err := json.Unmarshal(b, &a); err != nil {
		// Validation passed, so this only fires on a decoder/validator mismatch.
		return nil, fmt.Errorf("%s: %w: %v", name, errs.ErrWrongFormat, err)
	}
	return &a, nil
}

// Encode renders a in the on-disk format: four-space indentation, non-ASCII
// and HTML characters written as-is. U+2028 and U+2029 are the exception:
// encoding/json always writes them as \u2028 and \u2029, so a title holding
// them is not byte-identical to a raw UTF-8 dump, though it decodes the same.
func Encode(w io.Writer, a *archive.Archive) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(a)
}

// Save writes a atomically to path.
func Save(path string, a *archive.Archive) error {
	return WriteAtomic(path, func(w io.Writer) error { return Encode(w, a) })
}

// WriteAtomic writes the output of fill to path. The data is written into a
// temporary file in the same directory, synced, then renamed over path so
// readers never observe a partially-written file.
func WriteAtomic(path string, fill func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, f, err := createTempFile(dir, filepath.Base(path))
	if err != nil {
		return classify(path, err)
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp) // best-effort cleanup
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return classify(path, err)
	}
	return nil
}

// Exists reports whether something is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// SameFile reports whether a and b name the same existing file. Missing
// files are never the same as anything.
func SameFile(a, b string) bool {
	sa, err := os.Stat(a)
	if err != nil {
		return false
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(sa, sb)
}

// ReadFile reads a plain input file with the same error classification as Load.
func ReadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}
	return b, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w", path, errs.ErrNotFound)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s: %w", path, errs.ErrPermission)
	default:
		return fmt.Errorf("%s: %w", path, err)
	}
}

// createTempFile creates a temporary file in the target directory with a
// name derived from base (".tmp-<base>-<rand>"), returning its path and an
// *os.File ready for writing. Caller is responsible for closing it.
func createTempFile(dir, base string) (string, *os.File, error) {
	// Prefix ".tmp-<base>-" keeps sibling entries grouped.
	prefix := ".tmp-" + base + "-"
	f, err := os.CreateTemp(dir, prefix)
	if err != nil {
		return "", nil, err
	}
	return f.Name(), f, nil
}
