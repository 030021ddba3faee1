// Package textnorm canonicalizes Arabic/Latin text for script- and
// diacritic-insensitive comparison, and sanitizes untrusted query input at
// the request boundary. Normalize and Sanitize are pure, deterministic, and
// safe for concurrent use.
package textnorm

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// arabicMarks covers the Arabic diacritic and vowel-mark code points removed
// during normalization, plus the tatweel elongation character. The honorific
// and Koranic annotation ranges are included so decomposed combining marks
// (e.g. the hamza produced by NFKD of alef-hamza) are stripped as well.
var arabicMarks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0610, Hi: 0x061a, Stride: 1}, // honorific and small marks
		{Lo: 0x0640, Hi: 0x0640, Stride: 1}, // tatweel
		{Lo: 0x064b, Hi: 0x065f, Stride: 1}, // tanween, harakat, sukun, madda, hamza
		{Lo: 0x0670, Hi: 0x0670, Stride: 1}, // superscript alef
		{Lo: 0x06d6, Hi: 0x06dc, Stride: 1}, // Koranic annotation
		{Lo: 0x06df, Hi: 0x06e8, Stride: 1},
		{Lo: 0x06ea, Hi: 0x06ed, Stride: 1},
	},
}

// markChainPool avoids per-call transformer allocations; transformers carry
// state and must not be shared between goroutines.
var markChainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(arabicMarks)),
		)
	},
}

// Normalize canonicalizes text for fuzzy comparison: NFKD decomposition,
// lowercasing, Arabic diacritic and tatweel removal, orthographic folding of
// alef/yeh/teh-marbuta variants, removal of anything that is not a letter,
// mark, number, or whitespace, and whitespace collapsing. It is idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	t := markChainPool.Get().(transform.Transformer)
	decomposed, _, err := transform.String(t, text)
	t.Reset()
	markChainPool.Put(t)
	if err != nil {
		decomposed = text
	}

	lowered := strings.ToLower(decomposed)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		r = foldArabic(r)
		switch {
		case unicode.IsLetter(r), unicode.IsMark(r), unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
