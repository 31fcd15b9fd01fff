package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandPaths turns a mix of markdown files and directories into the list of
// markdown files to read. Directories are scanned recursively; files are kept
// as given, in order, so a single explicit path works even without a .md
// suffix.
func ExpandPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		found, err := ScanNotes(p)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

// ScanNotes recursively collects the markdown files under rootDir, sorted by
// path. A missing root yields no files.
func ScanNotes(rootDir string) ([]string, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, err
	}

	var found []string
	if err := walkDir(absRoot, &found); err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}

// walkDir recursively walks a directory, collecting note files
func walkDir(dir string, found *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		absPath := filepath.Join(dir, name)

		if entry.IsDir() {
			// Skip hidden dirs and common junk
			if shouldSkipDir(name) {
				continue
			}
			if err := walkDir(absPath, found); err != nil {
				return err
			}
		} else if isNoteFile(name) {
			*found = append(*found, absPath)
		}
	}

	return nil
}

// isNoteFile returns true if the file is a markdown note
func isNoteFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}

// shouldSkipDir returns true for directories that should be skipped during scanning
func shouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	switch name {
	case "node_modules", "vendor", "__pycache__", "target", "build", "dist":
		return true
	}
	return false
}
