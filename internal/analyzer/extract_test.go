package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, Extract("", "python").LineCount)
	assert.Equal(t, 1, Extract("a", "python").LineCount)
	assert.Equal(t, 1, Extract("a\n", "python").LineCount)
	assert.Equal(t, 2, Extract("a\nb", "python").LineCount)
	assert.Equal(t, 3, Extract("a\nb\nc\n", "python").LineCount)
}

func TestExtract_Python(t *testing.T) {
	src := "#!/usr/bin/env python3\n" +
		"\"\"\"Does X.\"\"\"\n" +
		"def f():\n" +
		"    pass\n" +
		"class C:\n" +
		"    pass\n"

	st := Extract(src, "python")
	assert.Equal(t, "Does X.", st.Description)
	assert.Equal(t, []string{"f"}, st.Functions)
	assert.Equal(t, []string{"C"}, st.Classes)
	assert.Equal(t, 6, st.LineCount)
}

func TestExtract_PythonMultilineDocstring(t *testing.T) {
	src := "\"\"\"\nScans things.\n\nSecond paragraph.\n\"\"\"\nimport os\n"
	st := Extract(src, "python")
	assert.Equal(t, "Scans things. Second paragraph.", st.Description)
	assert.Equal(t, []string{"os"}, st.Imports)
}

func TestExtract_Go(t *testing.T) {
	src := "// Package walker traverses trees.\n" +
		"// It skips ignored entries.\n" +
		"package walker\n\n" +
		"import \"fmt\"\n\n" +
		"type Walker struct{}\n\n" +
		"func (w *Walker) Walk() error { return nil }\n\n" +
		"func New() *Walker { return &Walker{} }\n"

	st := Extract(src, "go")
	assert.Equal(t, "Package walker traverses trees. It skips ignored entries.", st.Description)
	assert.Equal(t, []string{"Walk", "New"}, st.Functions)
	assert.Equal(t, []string{"Walker"}, st.Classes)
	assert.Equal(t, []string{"fmt"}, st.Imports)
}

func TestExtract_JavaScript(t *testing.T) {
	src := "/* Renders the widget. */\n" +
		"import React from 'react';\n" +
		"const render = (props) => {};\n" +
		"function helper(x) {}\n" +
		"class Widget {}\n"

	st := Extract(src, "javascript")
	assert.Equal(t, "Renders the widget.", st.Description)
	assert.Equal(t, []string{"render", "helper"}, st.Functions)
	assert.Equal(t, []string{"Widget"}, st.Classes)
	assert.Equal(t, []string{"react"}, st.Imports)
}

func TestExtract_BlockCommentMultiline(t *testing.T) {
	src := "/*\n * Handles requests.\n * Retries once.\n */\nint handle(int x) {\n}\n"
	st := Extract(src, "c")
	assert.Equal(t, "Handles requests. Retries once.", st.Description)
	assert.Equal(t, []string{"handle"}, st.Functions)
}

func TestExtract_MarkdownHeading(t *testing.T) {
	st := Extract("# Project Title\n\nBody text.\n", "markdown")
	assert.Equal(t, "Project Title", st.Description)
	assert.Empty(t, st.Functions)
}

func TestExtract_DuplicatesPreserved(t *testing.T) {
	src := "def f():\n    pass\ndef f():\n    pass\n"
	st := Extract(src, "python")
	assert.Equal(t, []string{"f", "f"}, st.Functions)
}

func TestExtract_UnknownLanguage(t *testing.T) {
	st := Extract("def f():\nclass C:\n", LanguageUnknown)
	assert.Equal(t, 2, st.LineCount)
	assert.Empty(t, st.Description)
	assert.Empty(t, st.Functions)
	assert.Empty(t, st.Classes)
}

func TestExtract_InvalidUTF8Degrades(t *testing.T) {
	st := Extract(string([]byte{0xff, 0xfe, 'a'}), "python")
	assert.Equal(t, 0, st.LineCount)
	assert.Empty(t, st.Description)
	assert.Empty(t, st.Functions)
}

func TestExtract_DescriptionBeyondLookaheadIgnored(t *testing.T) {
	src := strings.Repeat("\n", descriptionLookahead+5) + "# too late\n"
	st := Extract(src, "shell")
	assert.Empty(t, st.Description)
}

func TestExtract_DescriptionTruncated(t *testing.T) {
	long := "# " + strings.Repeat("x", descriptionMaxLen+50)
	st := Extract(long+"\n", "shell")
	require.NotEmpty(t, st.Description)
	assert.Len(t, []rune(st.Description), descriptionMaxLen)
}

func TestExtract_CodeLineStopsDescriptionScan(t *testing.T) {
	src := "import os\n# comment after code\n"
	st := Extract(src, "python")
	assert.Empty(t, st.Description)
}

func TestExtract_Rust(t *testing.T) {
	src := "// Fast parser.\nuse std::io;\n\npub struct Parser {}\n\npub fn parse(input: &str) -> Parser {\n    Parser {}\n}\n"
	st := Extract(src, "rust")
	assert.Equal(t, "Fast parser.", st.Description)
	assert.Equal(t, []string{"parse"}, st.Functions)
	assert.Equal(t, []string{"Parser"}, st.Classes)
	assert.Equal(t, []string{"std::io"}, st.Imports)
}

func TestExtract_Shell(t *testing.T) {
	src := "#!/bin/bash\n# Deploys the app.\nsource lib.sh\n\ndeploy() {\n  echo hi\n}\nfunction cleanup {\n  true\n}\n"
	st := Extract(src, "shell")
	assert.Equal(t, "Deploys the app.", st.Description)
	assert.Equal(t, []string{"deploy", "cleanup"}, st.Functions)
	assert.Equal(t, []string{"lib.sh"}, st.Imports)
}
