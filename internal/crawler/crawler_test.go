package crawler

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codescribe/internal/analyzer"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestCrawler_Scan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.py", "def f():\n    pass\n")
	writeFile(t, root, "lib/util.go", "package util\n\nfunc Do() {}\n")
	writeFile(t, root, "docs/readme.md", "# Docs\n")
	writeFile(t, root, "node_modules/dep/index.js", "function hidden() {}\n")
	writeFile(t, root, ".hidden", "secret\n")

	c, err := New(nil)
	require.NoError(t, err)

	sum, err := c.Scan(root)
	require.NoError(t, err)

	paths := make(map[string]analyzer.FileRecord)
	for _, rec := range sum.Records {
		paths[filepath.ToSlash(rec.Path)] = rec
	}

	assert.Len(t, sum.Records, 3)
	assert.Contains(t, paths, "main.py")
	assert.Contains(t, paths, "lib/util.go")
	assert.Contains(t, paths, "docs/readme.md")
	assert.NotContains(t, paths, "node_modules/dep/index.js")
	assert.NotContains(t, paths, ".hidden")

	assert.Equal(t, analyzer.Language("python"), paths["main.py"].Language)
	assert.Equal(t, []string{"Do"}, paths["lib/util.go"].Functions)
	assert.Equal(t, 1, sum.LanguageCounts["markdown"])
	assert.Equal(t, sum.FileCount, len(sum.Records))
}

func TestCrawler_GitignoreRespected(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "generated/\n*.log\n")
	writeFile(t, root, "generated/out.py", "def g():\n    pass\n")
	writeFile(t, root, "trace.log", "line\n")
	writeFile(t, root, "kept.py", "def k():\n    pass\n")

	c, err := New(nil)
	require.NoError(t, err)

	sum, err := c.Scan(root)
	require.NoError(t, err)

	require.Len(t, sum.Records, 1)
	assert.Equal(t, "kept.py", sum.Records[0].Path)
}

func TestCrawler_ExcludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "def a():\n    pass\n")
	writeFile(t, root, "gen/b.py", "def b():\n    pass\n")

	c, err := New([]string{"gen/**"})
	require.NoError(t, err)

	sum, err := c.Scan(root)
	require.NoError(t, err)

	require.Len(t, sum.Records, 1)
	assert.Equal(t, "a.py", sum.Records[0].Path)
}

func TestCrawler_SkipsReportBackups(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.py", "def a():\n    pass\n")
	writeFile(t, root, "README.md", "# App\n")
	writeFile(t, root, "README.md.backup", "# Old\n")
	writeFile(t, root, "docs/README.md.backup", "# Older\n")

	c, err := New(nil)
	require.NoError(t, err)

	sum, err := c.Scan(root)
	require.NoError(t, err)

	require.Len(t, sum.Records, 2)
	for _, rec := range sum.Records {
		assert.NotContains(t, rec.Path, ".backup")
	}
}

func TestCrawler_Excluded(t *testing.T) {
	c, err := New([]string{"gen/**", "*.db"})
	require.NoError(t, err)

	assert.True(t, c.Excluded("gen/out.py"))
	assert.True(t, c.Excluded("codescribe.db"))
	assert.False(t, c.Excluded("src/main.py"))
}

func TestIgnoredPath(t *testing.T) {
	assert.True(t, IgnoredPath("node_modules/dep/index.js"))
	assert.True(t, IgnoredPath(".git/config"))
	assert.True(t, IgnoredPath("vendor/lib/a.go"))
	assert.False(t, IgnoredPath("src/main.go"))
}

func TestCrawler_InvalidExcludePattern(t *testing.T) {
	_, err := New([]string{"[unclosed"})
	assert.Error(t, err)
}

func TestCrawler_EmptyTree(t *testing.T) {
	c, err := New(nil)
	require.NoError(t, err)

	sum, err := c.Scan(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.FileCount)
	assert.Empty(t, sum.Records)
}
