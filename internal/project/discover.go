package project

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// CatalogDirName and CatalogFileName form the conventional catalog location
// inside a problem directory: <dir>/test_cases/test_cases.json.
const (
	CatalogDirName  = "test_cases"
	CatalogFileName = "test_cases.json"
)

// DiscoverCatalogs finds conventional catalog files below root, one per
// problem directory, up to maxDepth directory levels deep. Results are
// sorted relative paths.
func DiscoverCatalogs(root string, maxDepth int) ([]string, error) {
	var found []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		if d.IsDir() {
			if rel != "." && (strings.HasPrefix(d.Name(), ".") || isExcludedDir(d.Name())) {
				return filepath.SkipDir
			}
			if rel != "." && depth(rel) > maxDepth+1 {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Name() == CatalogFileName && filepath.Base(filepath.Dir(path)) == CatalogDirName {
			found = append(found, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(found)
	return found, nil
}

func depth(rel string) int {
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}

// isExcludedDir returns true for directories that never hold catalogs.
func isExcludedDir(name string) bool {
	switch name {
	case "node_modules", "vendor", "__pycache__", "build", "dist", "out", "target":
		return true
	}
	return false
}
