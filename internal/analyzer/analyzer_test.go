package analyzer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeFile_PythonScript(t *testing.T) {
	content := []byte("#!/usr/bin/env python3\n\"\"\"Does X.\"\"\"\ndef f():\n    pass\nclass C:\n    pass\n")

	rec := AnalyzeFile("a.py", content)

	assert.Equal(t, "a.py", rec.Path)
	assert.Equal(t, Language("python"), rec.Language)
	assert.Equal(t, "Does X.", rec.Description)
	assert.Equal(t, []string{"f"}, rec.Functions)
	assert.Equal(t, []string{"C"}, rec.Classes)
	assert.Equal(t, len(content), rec.Size)
	assert.Equal(t, 6, rec.LineCount)
}

func TestAnalyzeFile_Binary(t *testing.T) {
	rec := AnalyzeFile("b.bin", []byte{0, 1, 2, 3, 4})

	assert.Equal(t, LanguageBinary, rec.Language)
	assert.Equal(t, 0, rec.LineCount)
	assert.Equal(t, []string{}, rec.Functions)
	assert.Equal(t, []string{}, rec.Classes)
	assert.Empty(t, rec.Description)
}

func TestAnalyzeFile_EmptyTextFile(t *testing.T) {
	rec := AnalyzeFile("c.txt", []byte{})

	assert.Equal(t, Language("text"), rec.Language)
	assert.Equal(t, 0, rec.LineCount)
	assert.Empty(t, rec.Description)
	assert.Equal(t, []string{}, rec.Functions)
}

func TestAnalyzeFile_Idempotent(t *testing.T) {
	content := []byte("def f():\n    pass\n")
	first := AnalyzeFile("x.py", content)
	second := AnalyzeFile("x.py", content)
	assert.Equal(t, first, second)
}

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil)
	assert.Equal(t, 0, sum.FileCount)
	assert.Empty(t, sum.LanguageCounts)
	assert.Empty(t, sum.Records)
}

func TestSummarize(t *testing.T) {
	inputs := []FileInput{
		{Path: "a.py", Data: []byte("def f():\n    pass\n")},
		{Path: "b.py", Data: []byte("class C:\n    pass\n")},
		{Path: "c.bin", Data: []byte{0, 1, 2}},
		{Path: "d.weird", Data: []byte("???\n")},
	}

	sum := Summarize(inputs)

	require.Equal(t, 4, sum.FileCount)
	require.Len(t, sum.Records, 4)

	t.Run("order preserved", func(t *testing.T) {
		for i, in := range inputs {
			assert.Equal(t, in.Path, sum.Records[i].Path)
		}
	})

	t.Run("language tally", func(t *testing.T) {
		assert.Equal(t, 2, sum.LanguageCounts["python"])
		assert.Equal(t, 1, sum.LanguageCounts[LanguageBinary])
		assert.Equal(t, 1, sum.LanguageCounts[LanguageUnknown])

		total := 0
		for _, n := range sum.LanguageCounts {
			total += n
		}
		assert.Equal(t, sum.FileCount, total)
	})
}

func TestSummarize_CountInvariantHolds(t *testing.T) {
	var inputs []FileInput
	for i := 0; i < 30; i++ {
		inputs = append(inputs, FileInput{
			Path: fmt.Sprintf("f%d.go", i),
			Data: []byte("package p\n"),
		})
	}
	inputs = append(inputs, FileInput{Path: "blob", Data: []byte{0}})

	sum := Summarize(inputs)

	total := 0
	for _, n := range sum.LanguageCounts {
		total += n
	}
	assert.Equal(t, len(inputs), sum.FileCount)
	assert.Equal(t, sum.FileCount, len(sum.Records))
	assert.Equal(t, sum.FileCount, total)
}

func TestSummarizeRecords_Regroup(t *testing.T) {
	recs := []FileRecord{
		{Path: "a.py", Language: "python"},
		{Path: "b.go", Language: "go"},
	}
	sum := SummarizeRecords(recs)
	assert.Equal(t, 2, sum.FileCount)
	assert.Equal(t, 1, sum.LanguageCounts["python"])
	assert.Equal(t, 1, sum.LanguageCounts["go"])

	// The summary owns its record slice.
	recs[0].Path = "mutated"
	assert.Equal(t, "a.py", sum.Records[0].Path)
}
