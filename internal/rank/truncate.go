package rank

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Per-tool text caps. Search snippets stay small; detail fetches grow
// when the caller asks for full text.
const (
	SnippetCap  = 500
	FullTextCap = 5000
)

// markerFormat is the machine-readable continuation marker appended to
// every truncated field. It names the tool/flag that retrieves the full
// text, so a truncated field is always distinguishable from a naturally
// short one.
const markerFormat = " [truncated: %s]"

// Truncate cuts text at cap bytes (never splitting a UTF-8 rune) and
// appends a marker naming how to retrieve the remainder. Text at or
// under the cap is returned unchanged, with no marker.
func Truncate(text string, capBytes int, retrieval string) string {
	if capBytes <= 0 || len(text) <= capBytes {
		return text
	}
	cut := capBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + fmt.Sprintf(markerFormat, retrieval)
}

// IsTruncated reports whether a field carries the continuation marker.
func IsTruncated(text string) bool {
	return strings.HasSuffix(text, "]") && strings.Contains(text, "[truncated: ")
}
