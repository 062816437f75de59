package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"linelimit/internal/settings"
)

// ErrUnsupportedFile is returned when a single-file target has an extension
// no front-end handles.
var ErrUnsupportedFile = errors.New("unsupported file type")

// ListFiles returns the sorted list of files under root whose extension is
// in exts. Directories and files whose base name matches an exclude pattern
// (filepath.Match syntax) are skipped. A root that is a file is returned as
// is when its extension is accepted.
func ListFiles(root string, exts, exclude []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		if !hasExt(root, exts) {
			return nil, fmt.Errorf("%s: %w", root, ErrUnsupportedFile)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && excluded(d.Name(), exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && hasExt(path, exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

func hasExt(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if p == name {
			return true
		}
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// NearestSettings walks up from start looking for a settings file. The file
// name is matched case-insensitively.
func NearestSettings(start string) (string, bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		entries, err := os.ReadDir(dir)
		if err == nil {
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				if ok, _ := settings.IsSettingsFile(e.Name()); ok {
					return filepath.Join(dir, e.Name()), true
				}
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Candidates turns paths into additional texts, keeping order and dropping
// duplicates.
func Candidates(paths ...string) []settings.AdditionalText {
	out := make([]settings.AdditionalText, 0, len(paths))
	seen := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		key := filepath.Clean(p)
		if abs, err := filepath.Abs(p); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, settings.NewFileText(p))
	}
	return out
}

func isDir(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
