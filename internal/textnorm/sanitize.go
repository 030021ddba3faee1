package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ftsOperators are the full-text-search operator characters replaced with a
// space so end-user input can never inject query syntax into the primary
// search tier.
const ftsOperators = "&|!:\"()*"

// Sanitize cleans raw end-user input at the untrusted boundary: NFKC
// normalization, replacement of control characters and full-text operators
// with spaces, removal of anything outside letters, marks, numbers,
// whitespace, and light punctuation, then whitespace collapsing. Length and
// emptiness policy is the caller's concern.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}

	s := norm.NFKC.String(raw)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsControl(r):
			b.WriteByte(' ')
		case strings.ContainsRune(ftsOperators, r):
			b.WriteByte(' ')
		case unicode.IsLetter(r), unicode.IsMark(r), unicode.IsNumber(r), unicode.IsSpace(r):
			b.WriteRune(r)
		case r == '-' || r == '\'' || r == '‘' || r == '’' || r == ',' || r == '.':
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
