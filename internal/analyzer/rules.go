package analyzer

import "regexp"

type ruleKind int

const (
	kindFunction ruleKind = iota
	kindClass
	kindImport
)

// rule is one line-oriented extraction pattern. The first non-empty capture
// group of the pattern is the extracted identifier.
type rule struct {
	kind    ruleKind
	pattern *regexp.Regexp
}

// ruleSets maps each language to its ordered extraction rules. Languages
// without an entry simply yield empty structure, never an error. The rules
// are deliberately best-effort textual matches, not grammars.
var ruleSets = map[Language][]rule{
	"python":     pythonRules,
	"javascript": jsRules,
	"typescript": jsRules,
	"react":      jsRules,
	"java":       javaRules,
	"go":         goRules,
	"rust":       rustRules,
	"ruby":       rubyRules,
	"php":        phpRules,
	"shell":      shellRules,
	"csharp":     csharpRules,
	"kotlin":     kotlinRules,
	"swift":      swiftRules,
	"scala":      scalaRules,
	"c":          cRules,
	"cpp":        cppRules,
}

var pythonRules = []rule{
	{kindFunction, regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)},
	{kindClass, regexp.MustCompile(`^\s*class\s+([A-Za-z_]\w*)`)},
	{kindImport, regexp.MustCompile(`^\s*(?:from|import)\s+([\w.]+)`)},
}

var jsRules = []rule{
	{kindFunction, regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*\(`)},
	{kindFunction, regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?\(`)},
	{kindClass, regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`)},
	{kindImport, regexp.MustCompile(`^\s*import\s+.*?from\s+['"]([^'"]+)['"]`)},
	{kindImport, regexp.MustCompile(`=\s*require\(\s*['"]([^'"]+)['"]\s*\)`)},
}

var javaRules = []rule{
	{kindFunction, regexp.MustCompile(`^\s*(?:public|private|protected)\s+(?:static\s+)?(?:final\s+)?[\w<>,\[\]]+\s+(\w+)\s*\(`)},
	{kindClass, regexp.MustCompile(`^\s*(?:public\s+|final\s+|abstract\s+)*(?:class|interface|enum)\s+([A-Za-z_]\w*)`)},
	{kindImport, regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+)\s*;`)},
}

var goRules = []rule{
	{kindFunction, regexp.MustCompile(`^func\s+(?:\([^)]*\)\s+)?([A-Za-z_]\w*)\s*\(`)},
	{kindClass, regexp.MustCompile(`^type\s+([A-Za-z_]\w*)\s+(?:struct|interface)\b`)},
	{kindImport, regexp.MustCompile(`^import\s+(?:\w+\s+)?"([^"]+)"`)},
}

var rustRules = []rule{
	{kindFunction, regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?(?:unsafe\s+)?fn\s+([A-Za-z_]\w*)`)},
	{kindClass, regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:struct|enum|trait)\s+([A-Za-z_]\w*)`)},
	{kindImport, regexp.MustCompile(`^\s*use\s+([\w:]+)`)},
}

var rubyRules = []rule{
	{kindFunction, regexp.MustCompile(`^\s*def\s+(?:self\.)?([A-Za-z_]\w*[?!]?)`)},
	{kindClass, regexp.MustCompile(`^\s*(?:class|module)\s+([A-Z]\w*)`)},
	{kindImport, regexp.MustCompile(`^\s*require(?:_relative)?\s+['"]([^'"]+)['"]`)},
}

var phpRules = []rule{
	{kindFunction, regexp.MustCompile(`^\s*(?:public\s+|private\s+|protected\s+|static\s+|abstract\s+|final\s+)*function\s+([A-Za-z_]\w*)\s*\(`)},
	{kindClass, regexp.MustCompile(`^\s*(?:abstract\s+|final\s+)?(?:class|interface|trait)\s+([A-Za-z_]\w*)`)},
	{kindImport, regexp.MustCompile(`^\s*use\s+([\w\\]+)`)},
}

var shellRules = []rule{
	{kindFunction, regexp.MustCompile(`^\s*function\s+([A-Za-z_]\w*)`)},
	{kindFunction, regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*\(\)\s*\{`)},
	{kindImport, regexp.MustCompile(`^\s*(?:source|\.)\s+(\S+)`)},
}

var csharpRules = []rule{
	{kindFunction, regexp.MustCompile(`^\s*(?:public|private|protected|internal)\s+(?:static\s+)?(?:async\s+)?[\w<>,\[\]]+\s+(\w+)\s*\(`)},
	{kindClass, regexp.MustCompile(`^\s*(?:public\s+|internal\s+|private\s+|protected\s+|static\s+|sealed\s+|abstract\s+|partial\s+)*(?:class|struct|interface|record)\s+([A-Za-z_]\w*)`)},
	{kindImport, regexp.MustCompile(`^\s*using\s+([\w.]+)\s*;`)},
}

var kotlinRules = []rule{
	{kindFunction, regexp.MustCompile(`^\s*(?:public\s+|private\s+|internal\s+|protected\s+)?(?:suspend\s+)?fun\s+([A-Za-z_]\w*)`)},
	{kindClass, regexp.MustCompile(`^\s*(?:data\s+|sealed\s+|abstract\s+|open\s+|enum\s+)*(?:class|object|interface)\s+([A-Za-z_]\w*)`)},
	{kindImport, regexp.MustCompile(`^\s*import\s+([\w.]+)`)},
}

var swiftRules = []rule{
	{kindFunction, regexp.MustCompile(`^\s*(?:public\s+|private\s+|internal\s+|open\s+|static\s+|override\s+)*func\s+([A-Za-z_]\w*)`)},
	{kindClass, regexp.MustCompile(`^\s*(?:public\s+|final\s+|open\s+)*(?:class|struct|enum|protocol)\s+([A-Za-z_]\w*)`)},
	{kindImport, regexp.MustCompile(`^\s*import\s+(\w+)`)},
}

var scalaRules = []rule{
	{kindFunction, regexp.MustCompile(`^\s*(?:private\s+|protected\s+|override\s+)*def\s+([A-Za-z_]\w*)`)},
	{kindClass, regexp.MustCompile(`^\s*(?:case\s+|final\s+|abstract\s+)*(?:class|object|trait)\s+([A-Za-z_]\w*)`)},
	{kindImport, regexp.MustCompile(`^\s*import\s+([\w.]+)`)},
}

var cRules = []rule{
	{kindFunction, regexp.MustCompile(`^[A-Za-z_][\w* \t]*[ \t*]([A-Za-z_]\w*)\s*\([^;]*$`)},
	{kindClass, regexp.MustCompile(`^\s*(?:typedef\s+)?struct\s+([A-Za-z_]\w*)`)},
	{kindImport, regexp.MustCompile(`^\s*#include\s*[<"]([^>"]+)[>"]`)},
}

var cppRules = []rule{
	{kindFunction, regexp.MustCompile(`^[A-Za-z_][\w:* \t]*[ \t*]([A-Za-z_]\w*)\s*\([^;]*$`)},
	{kindClass, regexp.MustCompile(`^\s*(?:class|struct)\s+([A-Za-z_]\w*)`)},
	{kindImport, regexp.MustCompile(`^\s*#include\s*[<"]([^>"]+)[>"]`)},
}
