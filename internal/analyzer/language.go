package analyzer

import (
	"bytes"
	"path"
	"path/filepath"
	"strings"
)

// Language classifies a file's programming language. Besides the table
// entries below, "binary" and "unknown" act as catch-all tags.
type Language string

const (
	LanguageBinary  Language = "binary"
	LanguageUnknown Language = "unknown"
)

// languageByExt is the fixed extension table. Lookups are case-insensitive
// and total: anything missing maps to LanguageUnknown.
var languageByExt = map[string]Language{
	".py":         "python",
	".js":         "javascript",
	".ts":         "typescript",
	".jsx":        "react",
	".tsx":        "react",
	".java":       "java",
	".cpp":        "cpp",
	".c":          "c",
	".cs":         "csharp",
	".go":         "go",
	".rs":         "rust",
	".php":        "php",
	".rb":         "ruby",
	".swift":      "swift",
	".kt":         "kotlin",
	".scala":      "scala",
	".html":       "html",
	".css":        "css",
	".scss":       "scss",
	".sass":       "sass",
	".sql":        "sql",
	".sh":         "shell",
	".bash":       "shell",
	".json":       "json",
	".yaml":       "yaml",
	".yml":        "yaml",
	".xml":        "xml",
	".md":         "markdown",
	".txt":        "text",
	".dockerfile": "docker",
}

// interpreterLanguages maps shebang interpreter names to language tags.
// Trailing version digits are stripped before lookup (python3 -> python).
var interpreterLanguages = map[string]Language{
	"python": "python",
	"sh":     "shell",
	"bash":   "shell",
	"zsh":    "shell",
	"node":   "javascript",
	"ruby":   "ruby",
	"php":    "php",
}

// Classify maps a file to a language tag. The extension table is the
// primary rule; extensionless files fall back to shebang sniffing of the
// first line. The function is pure and never fails.
func Classify(filePath string, data []byte) Language {
	ext := strings.ToLower(filepath.Ext(filePath))
	if lang, ok := languageByExt[ext]; ok {
		return lang
	}
	if ext == "" {
		if lang := classifyShebang(data); lang != "" {
			return lang
		}
	}
	return LanguageUnknown
}

func classifyShebang(data []byte) Language {
	if !bytes.HasPrefix(data, []byte("#!")) {
		return ""
	}
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	fields := strings.Fields(strings.TrimPrefix(string(line), "#!"))
	if len(fields) == 0 {
		return ""
	}
	interp := path.Base(fields[0])
	if interp == "env" && len(fields) > 1 {
		interp = path.Base(fields[1])
	}
	interp = strings.TrimRight(interp, "0123456789.")
	return interpreterLanguages[interp]
}
