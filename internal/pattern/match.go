package pattern

import (
	"github.com/crystalline/biscuitidx/internal/bitmap"
	"github.com/crystalline/biscuitidx/internal/lenindex"
	"github.com/crystalline/biscuitidx/internal/posindex"
)

// maxPosition is the highest valid position/offset magnitude: records are
// truncated to 256 bytes on ingest, so no positional entry is ever recorded
// beyond it.
const maxPosition = 256

// Matcher evaluates a parsed Pattern against the positional and length
// indexes, implementing a dispatch table plus a recursive windowed matcher
// for multi-segment patterns. It holds no state of its own beyond the index
// references — every Evaluate call is independent and its intermediate
// bitmaps are freshly allocated, never aliasing index storage.
type Matcher struct {
	fwd  *posindex.Index
	rev  *posindex.Index
	lens *lenindex.Index
}

// NewMatcher builds a Matcher over the given forward/reverse positional
// indexes and length index.
func NewMatcher(fwd, rev *posindex.Index, lens *lenindex.Index) *Matcher {
	return &Matcher{fwd: fwd, rev: rev, lens: lens}
}

// Evaluate returns the set of live slots matching p, dispatching on the
// pattern's boundary flags and segment count. The caller is responsible for
// tombstone subtraction and TID materialization — Evaluate only answers the
// structural question of which slots match.
func (m *Matcher) Evaluate(p *Pattern) *bitmap.Bitmap {
	switch {
	case len(p.Segments) == 0:
		if p.HasPercent {
			return m.lens.Ge(0).Clone()
		}
		return m.lens.Eq(0).Clone()

	case len(p.Segments) == 1 && !p.StartsAny && !p.EndsAny: // exact
		seg := p.Segments[0]
		r := m.matchAt(seg, 0)
		r.AndInPlace(m.lens.Eq(seg.Len()))
		return r

	case len(p.Segments) == 1 && !p.StartsAny && p.EndsAny: // prefix
		seg := p.Segments[0]
		r := m.matchAt(seg, 0)
		r.AndInPlace(m.lens.Ge(seg.Len()))
		return r

	case len(p.Segments) == 1 && p.StartsAny && !p.EndsAny: // suffix
		seg := p.Segments[0]
		r := m.matchEnd(seg)
		r.AndInPlace(m.lens.Ge(seg.Len()))
		return r

	case len(p.Segments) == 1 && p.StartsAny && p.EndsAny: // contains
		seg := p.Segments[0]
		out := bitmap.New()
		maxLen := m.lens.MaxObservedLength()
		for pos := 0; pos <= maxLen-seg.Len(); pos++ {
			out.OrInPlace(m.matchAt(seg, pos))
		}
		return out

	default: // multiple segments
		return m.matchMulti(p)
	}
}

// matchAt computes the segment-at-position match: the set of live slots
// whose string holds seg, byte-for-byte with wildcards skipped, starting at
// position start.
func (m *Matcher) matchAt(seg Segment, start int) *bitmap.Bitmap {
	if start < 0 {
		return bitmap.New()
	}
	if seg.allWildcard() {
		// All seg.Len() positions from start must exist: length >= start +
		// seg.Len(). A naive "length > start" check only holds for a
		// single-underscore segment; generalized here for multi-byte
		// all-wildcard segments, e.g. the "__" segment of "a%__%d".
		return m.lens.Ge(start + seg.Len()).Clone()
	}

	var result *bitmap.Bitmap
	for i, c := range seg.chars {
		if c.wildcard {
			continue
		}
		pos := start + i
		if pos >= maxPosition {
			return bitmap.New()
		}
		bm, ok := m.fwd.Get(c.b, int16(pos))
		if !ok {
			return bitmap.New()
		}
		if result == nil {
			result = bm.Clone()
			continue
		}
		result.AndInPlace(bm)
		if result.IsEmpty() {
			return result
		}
	}
	if result == nil {
		// Unreachable: allWildcard is handled above, so a non-wildcard
		// segment always has at least one literal byte.
		return bitmap.New()
	}
	return result
}

// matchEnd computes the segment-at-end match: symmetric to matchAt but
// anchored against the reverse index, so seg is checked against the tail of
// the string regardless of total length.
func (m *Matcher) matchEnd(seg Segment) *bitmap.Bitmap {
	if seg.allWildcard() {
		return m.lens.Ge(seg.Len()).Clone()
	}

	ln := seg.Len()
	var result *bitmap.Bitmap
	for i, c := range seg.chars {
		if c.wildcard {
			continue
		}
		offset := -(ln - i)
		if -offset > maxPosition {
			return bitmap.New()
		}
		bm, ok := m.rev.Get(c.b, int16(offset))
		if !ok {
			return bitmap.New()
		}
		if result == nil {
			result = bm.Clone()
			continue
		}
		result.AndInPlace(bm)
		if result.IsEmpty() {
			return result
		}
	}
	if result == nil {
		return bitmap.New()
	}
	return result
}

// matchMulti runs the recursive windowed multi-segment matcher for patterns
// with two or more segments.
func (m *Matcher) matchMulti(p *Pattern) *bitmap.Bitmap {
	result := bitmap.New()
	candidates := m.lens.Ge(p.MinLen).Clone()
	m.recurse(p, 0, 0, candidates, result)
	return result
}

// recurse walks one level of the windowed matcher. segIdx == len(p.Segments)
// is the terminal case reached when the final segment was consumed inside
// the p-loop below (i.e. ends_any == true): candidates already represents a
// full match for that path and is folded straight into result.
//
// A uniform per-segment position loop would let the first segment match
// starting anywhere in [0, maxStart] even when the pattern has no leading
// %. That would contradict the single-segment "exact"/"prefix" dispatch
// cases above, which anchor a non-%-prefixed segment at position 0.
// Segment 0 is anchored to minStart (always 0) here whenever
// !p.StartsAny, matching that anchoring.
func (m *Matcher) recurse(p *Pattern, segIdx, minStart int, candidates, result *bitmap.Bitmap) {
	if candidates.IsEmpty() {
		return
	}
	if segIdx == len(p.Segments) {
		result.OrInPlace(candidates)
		return
	}

	seg := p.Segments[segIdx]
	isLast := segIdx == len(p.Segments)-1

	if isLast && !p.EndsAny {
		mend := m.matchEnd(seg)
		mend.AndInPlace(candidates)
		// The tail segment must start at or after minStart, so it cannot
		// overlap the bytes already consumed by the previous segment.
		mend.AndInPlace(m.lens.Ge(minStart + seg.Len()))
		result.OrInPlace(mend)
		return
	}

	remaining := p.suffixLen[segIdx+1]
	maxLen := m.lens.MaxObservedLength()
	maxStart := maxLen - seg.Len() - remaining

	hiStart := maxStart
	if segIdx == 0 && !p.StartsAny {
		hiStart = minStart
	}

	for pos := minStart; pos <= hiStart; pos++ {
		matched := m.matchAt(seg, pos)
		matched.AndInPlace(candidates)
		if matched.IsEmpty() {
			continue
		}
		m.recurse(p, segIdx+1, pos+seg.Len(), matched, result)
	}
}
