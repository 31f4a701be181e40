// Package report renders analysis results into per-directory README files
// or a single JSON document.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"codescribe/internal/analyzer"
)

const (
	maxLanguagesShown = 5
	maxNamesShown     = 5
	maxImportsShown   = 3
)

// Generator writes hierarchical README.md reports, one per directory that
// the scan covered. Existing READMEs are backed up before being replaced.
type Generator struct {
	dryRun bool
	now    func() time.Time
}

// NewGenerator creates a report generator. With dryRun set it renders
// everything but writes nothing.
func NewGenerator(dryRun bool) *Generator {
	return &Generator{dryRun: dryRun, now: time.Now}
}

// dirNode is one directory of the scanned tree with its direct files.
type dirNode struct {
	name    string
	rel     string
	subdirs map[string]*dirNode
	files   []analyzer.FileRecord
}

func newDirNode(name, rel string) *dirNode {
	return &dirNode{name: name, rel: rel, subdirs: map[string]*dirNode{}}
}

// buildTree groups records by their directory, creating intermediate
// nodes for nested paths.
func buildTree(rootName string, records []analyzer.FileRecord) *dirNode {
	root := newDirNode(rootName, ".")
	for _, rec := range records {
		dir := filepath.ToSlash(filepath.Dir(rec.Path))
		node := root
		if dir != "." {
			for _, part := range strings.Split(dir, "/") {
				child, ok := node.subdirs[part]
				if !ok {
					rel := part
					if node.rel != "." {
						rel = node.rel + "/" + part
					}
					child = newDirNode(part, rel)
					node.subdirs[part] = child
				}
				node = child
			}
		}
		node.files = append(node.files, rec)
	}
	return root
}

func (n *dirNode) sortedSubdirs() []*dirNode {
	out := make([]*dirNode, 0, len(n.subdirs))
	for _, child := range n.subdirs {
		out = append(out, child)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].name) < strings.ToLower(out[j].name)
	})
	return out
}

func (n *dirNode) sortedFiles() []analyzer.FileRecord {
	out := make([]analyzer.FileRecord, len(n.files))
	copy(out, n.files)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(filepath.Base(out[i].Path)) < strings.ToLower(filepath.Base(out[j].Path))
	})
	return out
}

// WriteAll renders one README.md per directory under root. It returns the
// paths it wrote (or would write, in dry-run mode).
func (g *Generator) WriteAll(root string, sum analyzer.ModuleSummary) ([]string, error) {
	tree := buildTree(filepath.Base(root), sum.Records)
	var written []string
	if err := g.writeDir(root, tree, &written); err != nil {
		return written, err
	}
	return written, nil
}

func (g *Generator) writeDir(root string, node *dirNode, written *[]string) error {
	content := g.RenderDir(node)
	target := filepath.Join(root, filepath.FromSlash(node.rel), "README.md")

	if g.dryRun {
		*written = append(*written, target)
	} else {
		if _, err := os.Stat(target); err == nil {
			backup := target + ".backup"
			if err := os.Rename(target, backup); err != nil {
				return fmt.Errorf("failed to back up %s: %w", target, err)
			}
		}
		if err := os.WriteFile(target, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		*written = append(*written, target)
	}

	for _, child := range node.sortedSubdirs() {
		if err := g.writeDir(root, child, written); err != nil {
			return err
		}
	}
	return nil
}

// RenderDir produces the README markdown for one directory.
func (g *Generator) RenderDir(node *dirNode) string {
	local := analyzer.SummarizeRecords(node.files)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", node.name)
	b.WriteString("## Module Overview\n\n")
	fmt.Fprintf(&b, "This module contains %d files and %d subdirectories.\n\n",
		local.FileCount, len(node.subdirs))
	fmt.Fprintf(&b, "**Path:** `%s`  \n", node.rel)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", g.now().Format("2006-01-02 15:04:05"))

	if langs := topLanguages(local.LanguageCounts); len(langs) > 0 {
		b.WriteString("**Languages:**\n\n")
		for _, lc := range langs {
			fmt.Fprintf(&b, "- %s: %d files\n", lc.lang, lc.count)
		}
		b.WriteString("\n")
	}

	if len(node.subdirs) > 0 {
		b.WriteString("## Subdirectories\n\n")
		for _, child := range node.sortedSubdirs() {
			fmt.Fprintf(&b, "- **%s/**\n", child.name)
		}
		b.WriteString("\n")
	}

	if files := node.sortedFiles(); len(files) > 0 {
		b.WriteString("## Files\n\n")
		for _, rec := range files {
			writeFileSummary(&b, rec)
		}
	}

	b.WriteString("---\n*Generated by codescribe.*\n")
	return b.String()
}

func writeFileSummary(b *strings.Builder, rec analyzer.FileRecord) {
	fmt.Fprintf(b, "### %s\n\n", filepath.Base(rec.Path))
	fmt.Fprintf(b, "**Language:** %s  \n", rec.Language)

	if rec.Language == analyzer.LanguageBinary {
		fmt.Fprintf(b, "**Size:** %d bytes\n\n", rec.Size)
		return
	}

	fmt.Fprintf(b, "**Lines:** %d  \n", rec.LineCount)
	if rec.Description != "" {
		fmt.Fprintf(b, "**Description:** %s\n", rec.Description)
	}
	b.WriteString("\n")

	if len(rec.Functions) > 0 {
		fmt.Fprintf(b, "**Functions:** `%s`\n\n", strings.Join(firstN(rec.Functions, maxNamesShown), "`, `"))
	}
	if len(rec.Classes) > 0 {
		fmt.Fprintf(b, "**Classes:** `%s`\n\n", strings.Join(firstN(rec.Classes, maxNamesShown), "`, `"))
	}
	if len(rec.Imports) > 0 {
		fmt.Fprintf(b, "**Imports:** `%s`\n\n", strings.Join(firstN(rec.Imports, maxImportsShown), "`, `"))
	}
}

type langCount struct {
	lang  analyzer.Language
	count int
}

// topLanguages orders languages by descending count, then name for a
// stable listing.
func topLanguages(counts map[analyzer.Language]int) []langCount {
	out := make([]langCount, 0, len(counts))
	for lang, n := range counts {
		out = append(out, langCount{lang, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].lang < out[j].lang
	})
	if len(out) > maxLanguagesShown {
		out = out[:maxLanguagesShown]
	}
	return out
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// RenderJSON serializes a summary for machine consumption.
func RenderJSON(sum analyzer.ModuleSummary) ([]byte, error) {
	return json.MarshalIndent(sum, "", "  ")
}
