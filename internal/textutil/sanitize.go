package textutil

import "strings"

// invisibleRunes are bidi controls and zero-width characters. PDF text
// layers and document titles carry them often; on a terminal they only
// shift or reorder neighbouring cells.
var invisibleRunes = map[rune]struct{}{
	0x061C: {}, // ALM
	0x00AD: {}, // soft hyphen
	0x180E: {}, // MVS
	0x200B: {}, 0x200C: {}, 0x200D: {}, 0x200E: {}, 0x200F: {},
	0x202A: {}, 0x202B: {}, 0x202C: {}, 0x202D: {}, 0x202E: {},
	0x2060: {},
	0x2066: {}, 0x2067: {}, 0x2068: {}, 0x2069: {},
	0x206A: {}, 0x206B: {}, 0x206C: {}, 0x206D: {}, 0x206E: {}, 0x206F: {},
	0xFEFF: {}, // BOM
}

// SanitizeTerminalText makes text safe to draw: control characters cannot
// inject escape sequences, whitespace controls become spaces and invisible
// formatting runes are removed.
func SanitizeTerminalText(text string) string {
	for _, r := range text {
		if requiresSanitization(r) {
			return sanitize(text)
		}
	}
	return text
}

func requiresSanitization(r rune) bool {
	if isInvisibleRune(r) {
		return true
	}
	return (r >= 0 && r < 0x20) || r == 0x7f || (r >= 0x80 && r < 0xa0)
}

func sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case isInvisibleRune(r):
		case r == '\t', r == '\n', r == '\r', r == '\f', r == '\v':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isInvisibleRune(r rune) bool {
	_, ok := invisibleRunes[r]
	return ok
}
