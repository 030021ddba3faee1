// Package highlight turns raw match index ranges into displayable segments.
// It is pure and independent of any UI representation.
package highlight

import (
	"sort"

	"github.com/soukly/searchd/internal/domain"
)

// Range is an inclusive [Start, End] rune range into the text being
// highlighted.
type Range struct {
	Start int
	End   int
}

// Merge splits text into highlighted and plain segments from match ranges.
// Ranges are sorted by start and coalesced when adjacent or overlapping
// (gap <= 1); out-of-bounds ranges are clamped to the text. With no ranges
// the whole text comes back as a single plain segment. Concatenating the
// Text of every segment reproduces the input text exactly.
func Merge(text string, ranges []Range) []domain.Segment {
	runes := []rune(text)
	merged := coalesce(ranges, len(runes))
	if len(merged) == 0 {
		return []domain.Segment{{Text: text}}
	}

	segments := make([]domain.Segment, 0, 2*len(merged)+1)
	pos := 0
	for _, r := range merged {
		if r.Start > pos {
			segments = append(segments, domain.Segment{Text: string(runes[pos:r.Start])})
		}
		segments = append(segments, domain.Segment{Text: string(runes[r.Start : r.End+1]), Highlighted: true})
		pos = r.End + 1
	}
	if pos < len(runes) {
		segments = append(segments, domain.Segment{Text: string(runes[pos:])})
	}
	return segments
}

// coalesce sorts ranges by start, clamps them to [0, limit), and merges any
// pair whose gap is at most one rune.
func coalesce(ranges []Range, limit int) []Range {
	if limit == 0 {
		return nil
	}

	clamped := make([]Range, 0, len(ranges))
	for _, r := range ranges {
		if r.Start < 0 {
			r.Start = 0
		}
		if r.End >= limit {
			r.End = limit - 1
		}
		if r.Start > r.End {
			continue
		}
		clamped = append(clamped, r)
	}
	if len(clamped) == 0 {
		return nil
	}

	sort.Slice(clamped, func(i, j int) bool { return clamped[i].Start < clamped[j].Start })

	merged := clamped[:1]
	for _, r := range clamped[1:] {
		last := &merged[len(merged)-1]
		if r.Start-last.End <= 1 {
			if r.End > last.End {
				last.End = r.End
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
