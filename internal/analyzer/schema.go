package analyzer

// FileRecord is the per-file analysis result. One record is created fresh
// for every analyzed file; nothing is cached between calls.
type FileRecord struct {
	Path        string   `json:"path"`
	Language    Language `json:"language"`
	LineCount   int      `json:"line_count"`
	Size        int      `json:"size"`
	Description string   `json:"description"`
	Functions   []string `json:"functions"`
	Classes     []string `json:"classes"`
	Imports     []string `json:"imports"`
}

// ModuleSummary aggregates the records of one scan batch. It is built once
// per scan and never mutated afterwards, only replaced by a new scan.
type ModuleSummary struct {
	FileCount      int              `json:"file_count"`
	LanguageCounts map[Language]int `json:"language_counts"`
	Records        []FileRecord     `json:"records"`
}

// FileInput is a (path, raw bytes) pair supplied by the caller. Reading the
// file from disk is the caller's responsibility.
type FileInput struct {
	Path string
	Data []byte
}
