package pipeline

import (
	"path/filepath"
	"strings"
)

// DisplayName is the name a file is reported under: relative to baseDir
// when it lies below it, slash separated.
func DisplayName(file, baseDir string) string {
	path := filepath.Clean(file)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// NormalizeFiles maps files to display names, keeping the first occurrence
// of duplicates and the input order.
func NormalizeFiles(files []string, baseDir string) []string {
	out := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		if f == "" {
			continue
		}
		name := DisplayName(f, baseDir)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
