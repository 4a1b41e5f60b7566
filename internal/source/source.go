// Package source discovers documentation pages under the source
// directory.
package source

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Doc is one discovered documentation page.
type Doc struct {
	Path         string
	RelativePath string
}

// docExtensions are the page formats the loader understands.
var docExtensions = map[string]bool{
	".html": true,
	".htm":  true,
	".md":   true,
}

// List walks dir and returns every documentation page, sorted by
// relative path so downstream processing order is stable. Hidden
// directories are skipped.
func List(dir string) ([]Doc, error) {
	var docs []Doc
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !docExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		docs = append(docs, Doc{Path: path, RelativePath: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan source directory: %w", err)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].RelativePath < docs[j].RelativePath })
	return docs, nil
}
