package hermes

import (
	"strings"
	"unicode"
)

// Normalize prepares extracted page text for embedding.
//
// Invalid UTF-8 is replaced, words hyphenated across line breaks are joined,
// line breaks that do not end a sentence become spaces, the text is
// lowercased, characters other than letters, digits, underscore, whitespace,
// periods and commas are dropped, and runs of whitespace collapse to a single
// space.
func Normalize(text string) string {
	text = strings.ToValidUTF8(text, "�")
	text = strings.ReplaceAll(text, "-\r\n", "")
	text = strings.ReplaceAll(text, "-\n", "")

	var b strings.Builder
	b.Grow(len(text))
	var prev rune
	for _, r := range text {
		switch {
		case r == '\n' && prev != '.':
			b.WriteRune(' ')
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r),
			r == '_', r == '.', r == ',':
			b.WriteRune(unicode.ToLower(r))
		}
		prev = r
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
