// Package fs implements file discovery and hashing on the local filesystem.
package fs

import (
	iofs "io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/hermes"
)

// Ensure Finder implements hermes.Finder at compile time.
var _ hermes.Finder = (*Finder)(nil)

// Finder walks a directory tree looking for PDF files.
type Finder struct {
	// SkipHidden skips dot-files and dot-directories.
	SkipHidden bool
}

// NewFinder creates a Finder that skips hidden entries.
func NewFinder() *Finder {
	return &Finder{SkipHidden: true}
}

// Find returns every file with a .pdf extension (any case) below dir.
// Unreadable subdirectories are skipped; an unreadable dir is an error.
func (f *Finder) Find(dir string) ([]hermes.FileInfo, error) {
	var files []hermes.FileInfo

	err := filepath.WalkDir(dir, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			if d != nil && d.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}

		if f.SkipHidden && path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}

		if d.IsDir() || !IsPDF(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// File vanished between listing and stat.
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		files = append(files, hermes.FileInfo{
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// IsPDF reports whether path has a .pdf extension, ignoring case.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
