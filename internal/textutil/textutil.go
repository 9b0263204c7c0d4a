package textutil

import (
	"bytes"
	"strings"
)

// NormalizeUTF8LF converts CRLF to LF and ensures the output is valid UTF-8
// by replacing invalid byte sequences with the Unicode replacement character.
func NormalizeUTF8LF(b []byte) []byte {
	// Normalize newlines first
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	b = bytes.ReplaceAll(b, []byte("\r"), []byte("\n"))
	// Ensure valid UTF-8
	return bytes.ToValidUTF8(b, []byte("\uFFFD"))
}

// NonBlankLines splits b into trimmed lines, dropping empty ones.
func NonBlankLines(b []byte) []string {
	var out []string
	for _, line := range strings.Split(string(NormalizeUTF8LF(b)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
