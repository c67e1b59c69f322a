// Package bitmap provides the compressed-bitmap primitive the rest of the
// index core is built on: a mutable set of uint32 slot numbers supporting
// point mutation, set algebra, and ordered iteration.
//
// It wraps github.com/RoaringBitmap/roaring rather than hand-rolling a
// container format, and normalizes every mutating operation to a canonical
// run-optimized form so that two bitmaps with equal membership always
// serialize identically, which keeps round-trip and equality tests simple.
package bitmap

import (
	"github.com/RoaringBitmap/roaring"
)

// Bitmap is a compressed, mutable set of uint32 slot numbers.
type Bitmap struct {
	rb *roaring.Bitmap
}

// New returns an empty Bitmap ready for use.
func New() *Bitmap {
	return &Bitmap{rb: roaring.New()}
}

// Add inserts x into the set.
func (b *Bitmap) Add(x uint32) {
	b.rb.Add(x)
	b.canonicalize()
}

// Remove deletes x from the set. A no-op if x is absent.
func (b *Bitmap) Remove(x uint32) {
	b.rb.Remove(x)
	b.canonicalize()
}

// Contains reports whether x is a member of the set.
func (b *Bitmap) Contains(x uint32) bool {
	return b.rb.Contains(x)
}

// Count returns the cardinality of the set.
func (b *Bitmap) Count() int {
	return int(b.rb.GetCardinality())
}

// IsEmpty reports whether the set has no members.
func (b *Bitmap) IsEmpty() bool {
	return b.rb.IsEmpty()
}

// Clone returns a deep, independent copy of b.
func (b *Bitmap) Clone() *Bitmap {
	return &Bitmap{rb: b.rb.Clone()}
}

// AndInPlace intersects b with other, mutating b.
func (b *Bitmap) AndInPlace(other *Bitmap) {
	if other == nil {
		b.rb.Clear()
		return
	}
	b.rb.And(other.rb)
	b.canonicalize()
}

// OrInPlace unions b with other, mutating b.
func (b *Bitmap) OrInPlace(other *Bitmap) {
	if other == nil {
		return
	}
	b.rb.Or(other.rb)
	b.canonicalize()
}

// AndNotInPlace removes every member of other from b.
func (b *Bitmap) AndNotInPlace(other *Bitmap) {
	if other == nil {
		return
	}
	b.rb.AndNot(other.rb)
	b.canonicalize()
}

// Iterate calls fn for every member in ascending order. Iteration stops
// early if fn returns false.
func (b *Bitmap) Iterate(fn func(x uint32) bool) {
	it := b.rb.Iterator()
	for it.HasNext() {
		if !fn(it.Next()) {
			return
		}
	}
}

// ToSlice materializes the set as an ascending slice of uint32.
func (b *Bitmap) ToSlice() []uint32 {
	return b.rb.ToArray()
}

// Equals reports whether b and other contain the same members.
func (b *Bitmap) Equals(other *Bitmap) bool {
	if other == nil {
		return b.IsEmpty()
	}
	return b.rb.Equals(other.rb)
}

// canonicalize re-optimizes the run-container layout after a mutation so
// that equal sets always compare byte-equal when serialized. Cheap for the
// small (≤ few-million-slot) cardinalities this core targets.
func (b *Bitmap) canonicalize() {
	b.rb.RunOptimize()
}

// Union returns a fresh bitmap holding the union of the given bitmaps,
// leaving every argument unmodified. Nil bitmaps are treated as empty.
func Union(bitmaps ...*Bitmap) *Bitmap {
	out := New()
	for _, bm := range bitmaps {
		if bm == nil {
			continue
		}
		out.OrInPlace(bm)
	}
	return out
}
