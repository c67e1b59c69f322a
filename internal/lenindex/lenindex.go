// Package lenindex implements the length-bitmap pair: L_eq[ℓ], the set of
// live slots whose string length is exactly ℓ, and L_ge[ℓ], the set of live
// slots whose length is at least ℓ.
//
// Both are dense arrays indexed 0..max_length rather than computed on
// demand from a union over L_eq. This core picks the dense-array form:
// max_length is bounded at 256 by the record-length cap, so the space cost
// is small and fixed, while query-time cost for L_ge lookups — which the
// matcher uses for its initial multi-segment candidate set and for every
// all-wildcard segment — stays O(1).
package lenindex

import "github.com/crystalline/biscuitidx/internal/bitmap"

// Index holds the L_eq/L_ge bitmap arrays.
type Index struct {
	eq []*bitmap.Bitmap // eq[l]: slots with length exactly l
	ge []*bitmap.Bitmap // ge[l]: slots with length >= l
}

// New returns an empty length index.
func New() *Index {
	return &Index{}
}

// Grow extends the index so that positions 0..maxLen are addressable,
// allocating fresh empty bitmaps for any newly-exposed length. Called
// whenever a record's length exceeds the previously observed maximum.
func (ix *Index) Grow(maxLen int) {
	for len(ix.eq) <= maxLen {
		ix.eq = append(ix.eq, bitmap.New())
	}
	for len(ix.ge) <= maxLen {
		ix.ge = append(ix.ge, bitmap.New())
	}
}

// AddLength records slot as a live member of length ℓ: it joins L_eq[ℓ]
// and every L_ge[k] for k in [0, ℓ].
func (ix *Index) AddLength(slot uint32, length int) {
	ix.Grow(length)
	ix.eq[length].Add(slot)
	for k := 0; k <= length; k++ {
		ix.ge[k].Add(slot)
	}
}

// Eq returns L_eq[l], or an empty bitmap if l was never observed.
func (ix *Index) Eq(l int) *bitmap.Bitmap {
	if l < 0 || l >= len(ix.eq) {
		return bitmap.New()
	}
	return ix.eq[l]
}

// Ge returns L_ge[l], or an empty bitmap if l exceeds every observed
// length.
func (ix *Index) Ge(l int) *bitmap.Bitmap {
	if l <= 0 {
		return ix.geAll()
	}
	if l >= len(ix.ge) {
		return bitmap.New()
	}
	return ix.ge[l]
}

// geAll returns L_ge[0], the set of every live record regardless of
// length, materializing an empty bitmap if nothing has ever been indexed.
func (ix *Index) geAll() *bitmap.Bitmap {
	if len(ix.ge) == 0 {
		return bitmap.New()
	}
	return ix.ge[0]
}

// MaxObservedLength returns the highest length index currently allocated.
func (ix *Index) MaxObservedLength() int {
	return len(ix.eq) - 1
}

// ForEachBitmap calls fn once per bitmap in both L_eq and L_ge, for
// compaction's pass that subtracts tombstones from every bitmap.
func (ix *Index) ForEachBitmap(fn func(bm *bitmap.Bitmap)) {
	for _, bm := range ix.eq {
		fn(bm)
	}
	for _, bm := range ix.ge {
		fn(bm)
	}
}
