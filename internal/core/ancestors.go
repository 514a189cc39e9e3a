package core

import (
	"iter"
	"path/filepath"
)

// Ancestors yields the index documents of start's parent directories,
// nearest first. The walk stops before the first directory without an index
// document, and after the first directory holding a boundary marker.
func Ancestors(start string, cfg Config) iter.Seq[string] {
	return func(yield func(string) bool) {
		dir := filepath.Dir(start)
		for {
			doc := filepath.Join(dir, cfg.IndexName)
			if !fileExists(doc) {
				return
			}
			if !yield(doc) {
				return
			}
			if isRepositoryRoot(dir, cfg.BoundaryMarkers) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

func isRepositoryRoot(dir string, markers []string) bool {
	for _, m := range markers {
		if pathExists(filepath.Join(dir, m)) {
			return true
		}
	}
	return false
}
