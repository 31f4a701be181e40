package analyzer

import (
	"strings"
	"unicode/utf8"
)

const (
	// descriptionLookahead bounds how many leading lines are scanned for a
	// file description.
	descriptionLookahead = 20

	// descriptionMaxLen truncates extracted descriptions.
	descriptionMaxLen = 200
)

// Structure holds the lightweight structural facts extracted from one file.
type Structure struct {
	LineCount   int
	Description string
	Functions   []string
	Classes     []string
	Imports     []string
}

// commentStyle describes how a language expresses file-level comments and
// doc blocks. Missing entries mean no description can be extracted.
type commentStyle struct {
	linePrefixes []string // single-line comment markers, e.g. "#", "//"
	joinRuns     bool     // join a run of consecutive prefixed lines
	blockOpen    string   // block comment opener, e.g. "/*"
	blockClose   string
	docstring    bool // triple-quoted module docstring (script languages)
	heading      bool // markdown-style "#" heading counts as description
}

var cFamilyStyle = commentStyle{
	linePrefixes: []string{"//"},
	joinRuns:     true,
	blockOpen:    "/*",
	blockClose:   "*/",
}

var hashStyle = commentStyle{linePrefixes: []string{"#"}}

var commentStyles = map[Language]commentStyle{
	"python":     {linePrefixes: []string{"#"}, docstring: true},
	"shell":      hashStyle,
	"ruby":       hashStyle,
	"yaml":       hashStyle,
	"docker":     hashStyle,
	"javascript": cFamilyStyle,
	"typescript": cFamilyStyle,
	"react":      cFamilyStyle,
	"java":       cFamilyStyle,
	"go":         cFamilyStyle,
	"rust":       cFamilyStyle,
	"c":          cFamilyStyle,
	"cpp":        cFamilyStyle,
	"csharp":     cFamilyStyle,
	"kotlin":     cFamilyStyle,
	"swift":      cFamilyStyle,
	"scala":      cFamilyStyle,
	"php":        {linePrefixes: []string{"//", "#"}, joinRuns: true, blockOpen: "/*", blockClose: "*/"},
	"css":        {blockOpen: "/*", blockClose: "*/"},
	"scss":       cFamilyStyle,
	"sass":       cFamilyStyle,
	"sql":        {linePrefixes: []string{"--"}},
	"html":       {blockOpen: "<!--", blockClose: "-->"},
	"xml":        {blockOpen: "<!--", blockClose: "-->"},
	"markdown":   {heading: true},
}

// Extract derives line count, description and declaration names from
// decoded text. It never fails: undecodable input and unrecognized
// languages both degrade to empty structure.
func Extract(text string, lang Language) Structure {
	st := Structure{
		Functions: []string{},
		Classes:   []string{},
		Imports:   []string{},
	}
	if text == "" || !utf8.ValidString(text) {
		return st
	}

	st.LineCount = countLines(text)
	lines := strings.Split(text, "\n")
	st.Description = extractDescription(lines, lang)

	rules := ruleSets[lang]
	if len(rules) == 0 {
		return st
	}
	for _, line := range lines {
		for _, r := range rules {
			m := r.pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := firstCapture(m)
			if name == "" {
				continue
			}
			switch r.kind {
			case kindFunction:
				st.Functions = append(st.Functions, name)
			case kindClass:
				st.Classes = append(st.Classes, name)
			case kindImport:
				st.Imports = append(st.Imports, name)
			}
		}
	}
	return st
}

// countLines counts line breaks, plus one when content trails the last
// break. An empty file has zero lines.
func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

func firstCapture(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}

// extractDescription scans a bounded prefix of lines for the first
// description candidate: a file-level doc block if the language has one,
// otherwise the first comment line. Returns "" when nothing matches.
func extractDescription(lines []string, lang Language) string {
	style, ok := commentStyles[lang]
	if !ok {
		return ""
	}
	if len(lines) > descriptionLookahead {
		lines = lines[:descriptionLookahead]
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.HasPrefix(line, "#!") {
			continue
		}

		if style.docstring {
			if desc, matched := readDocstring(lines, i); matched {
				return truncate(desc)
			}
		}
		if style.blockOpen != "" && strings.HasPrefix(line, style.blockOpen) {
			return truncate(readBlockComment(lines, i, style))
		}
		if style.heading && strings.HasPrefix(line, "#") {
			return truncate(strings.TrimSpace(strings.TrimLeft(line, "#")))
		}
		for _, prefix := range style.linePrefixes {
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			if style.joinRuns {
				return truncate(readCommentRun(lines, i, prefix))
			}
			return truncate(strings.TrimSpace(strings.TrimPrefix(line, prefix)))
		}

		// First real code line: stop looking.
		return ""
	}
	return ""
}

// readDocstring collects a triple-quoted string opening at line i.
func readDocstring(lines []string, i int) (string, bool) {
	line := strings.TrimSpace(lines[i])
	var quote string
	switch {
	case strings.HasPrefix(line, `"""`):
		quote = `"""`
	case strings.HasPrefix(line, "'''"):
		quote = "'''"
	default:
		return "", false
	}

	body := strings.TrimPrefix(line, quote)
	if idx := strings.Index(body, quote); idx >= 0 {
		return strings.TrimSpace(body[:idx]), true
	}

	parts := []string{strings.TrimSpace(body)}
	for j := i + 1; j < len(lines); j++ {
		l := strings.TrimSpace(lines[j])
		if idx := strings.Index(l, quote); idx >= 0 {
			parts = append(parts, strings.TrimSpace(l[:idx]))
			break
		}
		parts = append(parts, l)
	}
	return strings.TrimSpace(strings.Join(nonEmpty(parts), " ")), true
}

// readBlockComment collects a block comment opening at line i.
func readBlockComment(lines []string, i int, style commentStyle) string {
	var parts []string
	for j := i; j < len(lines); j++ {
		l := strings.TrimSpace(lines[j])
		if j == i {
			l = strings.TrimSpace(strings.TrimPrefix(l, style.blockOpen))
		}
		done := false
		if idx := strings.Index(l, style.blockClose); idx >= 0 {
			l = strings.TrimSpace(l[:idx])
			done = true
		}
		l = strings.TrimSpace(strings.TrimLeft(l, "* "))
		parts = append(parts, l)
		if done {
			break
		}
	}
	return strings.Join(nonEmpty(parts), " ")
}

// readCommentRun collects consecutive comment lines sharing one prefix.
func readCommentRun(lines []string, i int, prefix string) string {
	var parts []string
	for j := i; j < len(lines); j++ {
		l := strings.TrimSpace(lines[j])
		if !strings.HasPrefix(l, prefix) {
			break
		}
		parts = append(parts, strings.TrimSpace(strings.TrimPrefix(l, prefix)))
	}
	return strings.Join(nonEmpty(parts), " ")
}

func nonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= descriptionMaxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:descriptionMaxLen])
}
