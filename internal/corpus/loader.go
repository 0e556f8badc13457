package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxFileSize is the largest corpus file the loader will read (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// LoaderConfig controls corpus traversal.
type LoaderConfig struct {
	RootDir     string   // Corpus root to walk.
	Include     []string // Glob patterns; empty means all .md files.
	Exclude     []string // Glob patterns; matching files are skipped.
	MaxFileSize int64    // Files larger than this are skipped (0 = default).
}

// skipDirs are directory names never descended into.
var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	".docfind":     {},
	".idea":        {},
	".vscode":      {},
}

// Load walks the corpus directory and parses every Markdown file into a
// RawDocument. The category is the top-level folder name relative to
// the root; files directly under the root get an empty category.
func Load(config LoaderConfig) ([]RawDocument, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("loader: resolve root: %w", err)
	}

	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var docs []RawDocument

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip unreadable entries instead of aborting.
			return nil
		}

		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		relSlash := filepath.ToSlash(relPath)

		if !matchesInclude(relSlash, config.Include) || matchesExclude(relSlash, config.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > maxSize {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("loader: reading %s: %w", relSlash, err)
		}

		slug := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		title, body, tags, err := ParseMarkdown(string(content), slug)
		if err != nil {
			return fmt.Errorf("loader: parsing %s: %w", relSlash, err)
		}

		docs = append(docs, RawDocument{
			Category: categoryOf(relSlash),
			Title:    title,
			Path:     relSlash,
			Body:     body,
			Tags:     tags,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// categoryOf returns the top-level folder of a slash-separated relative
// path, or "" for files at the corpus root.
func categoryOf(relSlash string) string {
	if i := strings.IndexByte(relSlash, '/'); i >= 0 {
		return relSlash[:i]
	}
	return ""
}

// matchesInclude returns true if relPath matches any include pattern.
// An empty pattern list includes everything.
func matchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// matchesExclude returns true if relPath matches any exclude pattern.
func matchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks relPath (and its basename) against the given glob
// patterns, with ** support via doublestar.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, relPath); err == nil && matched {
			return true
		}
		base := filepath.Base(relPath)
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
