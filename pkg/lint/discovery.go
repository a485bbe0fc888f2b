package lint

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gnana997/proplint/pkg/parser"
)

// DefaultInclude matches every file with a supported grammar.
var DefaultInclude = []string{"**/*.{js,jsx,mjs,cjs,ts,tsx}"}

// DefaultExclude skips dependency and build output directories.
var DefaultExclude = []string{"**/node_modules/**", "**/.git/**", "**/dist/**", "**/build/**"}

// DiscoverFiles expands paths into the sorted list of lintable files.
// Regular files are taken as given when their extension is supported;
// directories are walked applying include and exclude globs relative to
// the directory.
func DiscoverFiles(paths, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	for _, pattern := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
		}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			if parser.DetectLanguage(abs) != parser.LanguageUnknown {
				add(abs)
			}
			continue
		}
		if err := walkDir(abs, include, exclude, add); err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func walkDir(root string, include, exclude []string, add func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if matchAny(exclude, rel) || (d.IsDir() && matchAny(exclude, rel+"/")) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if matchAny(include, rel) && parser.DetectLanguage(path) != parser.LanguageUnknown {
			add(path)
		}
		return nil
	})
}

func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
