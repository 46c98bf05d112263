package diagfmt

import (
	"path/filepath"

	"hdlgraph/internal/source"
)

func formatPath(path string, mode PathMode, baseDir string) string {
	if path == "" {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if baseDir != "" {
			if rel, err := filepath.Rel(baseDir, path); err == nil {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}

func lookupPath(strs *source.Interner, loc source.Loc) string {
	if strs == nil {
		return ""
	}
	s, _ := strs.Lookup(loc.File)
	return s
}
