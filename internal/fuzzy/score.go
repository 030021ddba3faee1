package fuzzy

import (
	"github.com/soukly/searchd/internal/textnorm"
)

// runeRange is an inclusive rune-index range within one field's normalized
// text.
type runeRange struct {
	start int
	end   int
}

// scoreField scores pattern against a single raw field value. The field is
// normalized before comparison. The returned base score is dist/len(pattern)
// clamped by the threshold: 0 for a literal occurrence, larger for
// approximate ones. ok is false when the field is empty or the best match
// scores worse than the threshold.
func scoreField(pattern []rune, raw string, threshold float64) (float64, []runeRange, bool) {
	text := []rune(textnorm.Normalize(raw))
	if len(text) == 0 {
		return 0, nil, false
	}

	if ranges := exactRanges(pattern, text); len(ranges) > 0 {
		return 0, ranges, true
	}

	dist, end := bestApproximate(pattern, text)
	score := float64(dist) / float64(len(pattern))
	if score > threshold {
		return 0, nil, false
	}

	start := end - len(pattern) + 1
	if start < 0 {
		start = 0
	}
	return score, []runeRange{{start: start, end: end}}, true
}

// exactRanges returns the non-overlapping literal occurrences of pattern in
// text, left to right.
func exactRanges(pattern, text []rune) []runeRange {
	if len(pattern) > len(text) {
		return nil
	}
	var ranges []runeRange
	for i := 0; i+len(pattern) <= len(text); {
		if runesEqual(text[i:i+len(pattern)], pattern) {
			ranges = append(ranges, runeRange{start: i, end: i + len(pattern) - 1})
			i += len(pattern)
			continue
		}
		i++
	}
	return ranges
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// bestApproximate finds the substring of text with the smallest edit
// distance to pattern (Sellers' approximate matching: deletions from text
// before and after the occurrence are free). It returns that distance and
// the inclusive rune index where the best occurrence ends.
func bestApproximate(pattern, text []rune) (int, int) {
	m, n := len(pattern), len(text)

	prev := make([]int, n+1)
	curr := make([]int, n+1)
	// Row 0: the empty pattern matches ending anywhere at no cost.

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}
			curr[j] = minOf(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	bestDist, bestEnd := m+1, 0
	for j := 1; j <= n; j++ {
		if prev[j] < bestDist {
			bestDist, bestEnd = prev[j], j-1
		}
	}
	if bestDist > m {
		bestDist = m
	}
	return bestDist, bestEnd
}

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
