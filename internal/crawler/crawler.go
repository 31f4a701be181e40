// Package crawler walks a directory tree and feeds file contents to the
// analysis engine. Exclusion rules: dot-entries, a built-in ignored
// directory set, the project .gitignore, and configured glob patterns.
package crawler

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"

	"codescribe/internal/analyzer"
)

// ignoredDirs are never descended into, regardless of .gitignore.
var ignoredDirs = map[string]bool{
	".git":          true,
	"node_modules":  true,
	"vendor":        true,
	"build":         true,
	"dist":          true,
	"target":        true,
	"venv":          true,
	"__pycache__":   true,
	".idea":         true,
	".vscode":       true,
	".pytest_cache": true,
}

// Crawler scans a directory for source files.
type Crawler struct {
	gitignore *ignore.GitIgnore
	excludes  []glob.Glob
}

// New creates a crawler. excludePatterns are glob patterns matched against
// slash-separated paths relative to the scan root; an invalid pattern is an
// error so misconfiguration surfaces early.
func New(excludePatterns []string) (*Crawler, error) {
	c := &Crawler{}
	for _, pattern := range excludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		c.excludes = append(c.excludes, g)
	}
	return c, nil
}

// ScanProject walks root and streams one FileRecord per regular file.
// Unreadable files degrade to a minimal binary-like record; a single bad
// file never aborts the walk. The onFile callback receives records in
// walk order.
func (c *Crawler) ScanProject(root string, onFile func(analyzer.FileRecord)) error {
	c.gitignore = loadGitignore(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if c.skip(rel, d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			// Unreadable file: emit a minimal record and keep walking.
			onFile(analyzer.FileRecord{
				Path:      rel,
				Language:  analyzer.LanguageBinary,
				Functions: []string{},
				Classes:   []string{},
				Imports:   []string{},
			})
			return nil
		}

		onFile(analyzer.AnalyzeFile(rel, data))
		return nil
	})
}

// Scan walks root and returns the aggregated summary for the whole tree.
func (c *Crawler) Scan(root string) (analyzer.ModuleSummary, error) {
	var records []analyzer.FileRecord
	err := c.ScanProject(root, func(rec analyzer.FileRecord) {
		records = append(records, rec)
	})
	if err != nil {
		return analyzer.ModuleSummary{}, err
	}
	return analyzer.SummarizeRecords(records), nil
}

func (c *Crawler) skip(rel string, d fs.DirEntry) bool {
	name := d.Name()
	if strings.HasPrefix(name, ".") {
		return true
	}
	if d.IsDir() && ignoredDirs[name] {
		return true
	}
	// Backups left behind by report generation are not project sources.
	if !d.IsDir() && name == "README.md.backup" {
		return true
	}

	slashed := filepath.ToSlash(rel)
	if c.gitignore != nil && c.gitignore.MatchesPath(slashed) {
		return true
	}
	return c.Excluded(rel)
}

// Excluded reports whether a relative path matches one of the configured
// exclude globs.
func (c *Crawler) Excluded(rel string) bool {
	slashed := filepath.ToSlash(rel)
	for _, g := range c.excludes {
		if g.Match(slashed) {
			return true
		}
	}
	return false
}

// IgnoredPath reports whether a relative path falls inside an entry the
// crawler never scans: dot-entries or the built-in ignored directories.
func IgnoredPath(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") || ignoredDirs[part] {
			return true
		}
	}
	return false
}

func loadGitignore(root string) *ignore.GitIgnore {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil
	}
	return gi
}
