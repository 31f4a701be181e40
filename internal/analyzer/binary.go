package analyzer

import (
	"bytes"
	"unicode/utf8"
)

const (
	// binarySniffLen bounds how much of a file the detector inspects.
	binarySniffLen = 8 * 1024

	// maxNonPrintableRatio is the share of control bytes above which a
	// sample is considered binary even if it decodes as UTF-8.
	maxNonPrintableRatio = 0.30
)

// IsBinary reports whether the content looks like a binary file. Only the
// first few KB are inspected, so the decision is cheap and deterministic.
// A sample is binary if it contains a NUL byte, fails to decode as UTF-8,
// or is dominated by non-printable control bytes.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sample := data
	truncated := false
	if len(sample) > binarySniffLen {
		sample = sample[:binarySniffLen]
		truncated = true
	}

	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}

	decodable := sample
	if truncated {
		// The sample boundary may have cut a multi-byte rune in half.
		// Drop at most one partial rune before validating.
		for i := 0; i < utf8.UTFMax-1 && len(decodable) > 0; i++ {
			r, size := utf8.DecodeLastRune(decodable)
			if r != utf8.RuneError || size != 1 {
				break
			}
			decodable = decodable[:len(decodable)-1]
		}
	}
	if !utf8.Valid(decodable) {
		return true
	}

	nonPrintable := 0
	for _, b := range sample {
		if isNonPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(sample)) > maxNonPrintableRatio
}

func isNonPrintable(b byte) bool {
	switch b {
	case '\t', '\n', '\r', '\v', '\f':
		return false
	}
	return b < 0x20 || b == 0x7f
}
