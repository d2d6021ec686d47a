package xmldoc

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// DefaultPatterns are the file name fragments of the documentation files
// produced for the web API and its contracts library.
var DefaultPatterns = []string{"WebApi.xml", "Library.Contracts"}

// Find walks baseDir recursively and returns the .xml files whose base name
// contains any of patterns, sorted. A missing baseDir yields no files.
// Unreadable entries below baseDir are skipped; the files found elsewhere
// are still returned, together with the joined errors of the skipped ones.
func Find(baseDir string, patterns ...string) ([]string, error) {
	var (
		found []string
		errs  []error
	)
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == baseDir {
				if errors.Is(err, fs.ErrNotExist) {
					return fs.SkipAll
				}
				return err
			}
			errs = append(errs, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xml") {
			return nil
		}
		if Matches(d.Name(), patterns...) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, errors.Join(errs...)
}

// Matches reports whether name contains any of patterns.
func Matches(name string, patterns ...string) bool {
	return lo.SomeBy(patterns, func(p string) bool {
		return p != "" && strings.Contains(name, p)
	})
}

// BaseDir returns the directory of the running executable, falling back to
// the working directory.
func BaseDir() string {
	if exe, err := os.Executable(); err == nil {
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
