// Package analyzer is the heuristic per-file analysis engine. Given a file
// path and its raw bytes it decides text vs binary, classifies the language,
// and extracts lightweight structure (description, function and class
// names) with line-oriented pattern rules. Every operation is total: bad
// input degrades to an empty record, it never produces an error.
package analyzer

// AnalyzeFile runs the full pipeline for one file: binary detection,
// language classification, then structural extraction. Binary files
// short-circuit to a minimal record with no line or structure data.
func AnalyzeFile(path string, data []byte) FileRecord {
	rec := FileRecord{
		Path:      path,
		Size:      len(data),
		Functions: []string{},
		Classes:   []string{},
		Imports:   []string{},
	}

	if IsBinary(data) {
		rec.Language = LanguageBinary
		return rec
	}

	rec.Language = Classify(path, data)
	st := Extract(string(data), rec.Language)
	rec.LineCount = st.LineCount
	rec.Description = st.Description
	rec.Functions = st.Functions
	rec.Classes = st.Classes
	rec.Imports = st.Imports
	return rec
}

// Summarize analyzes every input in order and aggregates the records.
// A problem with one file degrades that file's record; it never aborts
// the rest of the batch.
func Summarize(inputs []FileInput) ModuleSummary {
	records := make([]FileRecord, 0, len(inputs))
	for _, in := range inputs {
		records = append(records, AnalyzeFile(in.Path, in.Data))
	}
	return SummarizeRecords(records)
}

// SummarizeRecords aggregates already-built records, preserving their
// order. Callers use it to re-group records (for example per directory)
// without re-reading file contents.
func SummarizeRecords(records []FileRecord) ModuleSummary {
	counts := make(map[Language]int)
	for _, r := range records {
		counts[r.Language]++
	}
	out := make([]FileRecord, len(records))
	copy(out, records)
	return ModuleSummary{
		FileCount:      len(out),
		LanguageCounts: counts,
		Records:        out,
	}
}
