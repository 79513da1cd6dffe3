package textutil

import (
	"strings"

	"golang.org/x/text/unicode/bidi"
)

// Invisible and bidi formatting runes that file names may carry.
var formattingRuneLabels = map[rune]string{
	0x00AD: "⟪SHY⟫",
	0x061C: "⟪ALM⟫",
	0x180E: "⟪MVS⟫",
	0x200B: "⟪ZWSP⟫",
	0x200C: "⟪ZWNJ⟫",
	0x200D: "⟪ZWJ⟫",
	0x200E: "⟪LRM⟫",
	0x200F: "⟪RLM⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2060: "⟪WJ⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
	0xFEFF: "⟪BOM⟫",
}

// Placeholder is drawn in place of clusters that are unsafe to print.
const Placeholder = "?"

// SanitizeCluster returns cluster unchanged when it is safe to print and
// Placeholder otherwise. The replacement keeps the one-column width that
// ClusterWidth reports for such clusters.
func SanitizeCluster(cluster string) string {
	if IsUnsafeCluster(cluster) {
		return Placeholder
	}
	return cluster
}

// IsUnsafeCluster reports whether printing cluster could move the cursor,
// start an escape sequence or reorder the surrounding text.
func IsUnsafeCluster(cluster string) bool {
	for i, r := range cluster {
		if isControlRune(r) || isBidiControl(r) {
			return true
		}
		if i == 0 && isFormattingRune(r) {
			return true
		}
	}
	return false
}

// SanitizeTerminalText replaces control characters so user-controlled text cannot
// inject terminal escape sequences when printed outside the screen, and labels
// formatting runes so they become visible.
func SanitizeTerminalText(text string) string {
	clean := true
	for _, r := range text {
		if isControlRune(r) || isFormattingRune(r) {
			clean = false
			break
		}
	}
	if clean {
		return text
	}

	var b strings.Builder
	for _, r := range text {
		switch {
		case isFormattingRune(r):
			b.WriteString(formattingRuneLabels[r])
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case isControlRune(r):
			b.WriteString(Placeholder)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isControlRune(r rune) bool {
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0)
}

// isBidiControl covers the explicit embeddings, overrides and isolates
// plus the three implicit directional marks.
func isBidiControl(r rune) bool {
	switch r {
	case 0x061C, 0x200E, 0x200F:
		return true
	}
	props, _ := bidi.LookupRune(r)
	switch props.Class() {
	case bidi.LRE, bidi.RLE, bidi.PDF, bidi.LRO, bidi.RLO, bidi.LRI, bidi.RLI, bidi.FSI, bidi.PDI:
		return true
	}
	return false
}

func isFormattingRune(r rune) bool {
	_, ok := formattingRuneLabels[r]
	return ok
}
