package source

import (
	"fmt"
	"path/filepath"
)

// ExpandPaths expands file paths and glob patterns in argument order.
// Matches of one pattern are sorted; a path seen earlier is not repeated.
// Patterns that match nothing are kept as literal paths so that opening them
// reports a proper OpenError.
func ExpandPaths(patterns []string) ([]string, error) {
	seen := make(map[string]struct{}, len(patterns))
	var paths []string

	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			add(pattern)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}

	return paths, nil
}
