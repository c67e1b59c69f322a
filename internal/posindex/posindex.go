// Package posindex implements the position-indexed bitmap map at the heart
// of the pattern engine: for a byte value and a position, the set of record
// slots whose string holds that byte at that position.
//
// The same structure serves both the forward index (position measured from
// the start of the string) and the reverse index (position measured as a
// negative offset from the end) — callers just pick which sign convention
// they feed in.
//
// Entries for a given byte value are kept in a position-sorted slice rather
// than a nested map: per-character lists are small and mostly contiguous,
// ordered traversal aids future range queries, and cache locality during
// recursive matching dominates over hash-map dispatch.
package posindex

import "github.com/crystalline/biscuitidx/internal/bitmap"

// entry pairs a position with the bitmap of slots holding a fixed byte at
// that position.
type entry struct {
	pos int16
	bm  *bitmap.Bitmap
}

// Index maps byte value -> position-sorted entries. There are exactly 256
// possible byte values, so the outer dimension is a fixed array rather than
// a map, avoiding hash overhead on the hottest lookup in the engine.
type Index struct {
	table [256][]entry
}

// New returns an empty positional index.
func New() *Index {
	return &Index{}
}

// Get performs a binary-search lookup for (c, pos) and reports whether any
// slot has ever been recorded there.
func (ix *Index) Get(c byte, pos int16) (*bitmap.Bitmap, bool) {
	entries := ix.table[c]
	i, found := search(entries, pos)
	if !found {
		return nil, false
	}
	return entries[i].bm, true
}

// Add records slot as present at (c, pos), creating the position entry if
// this is the first slot ever seen there. Entries within a character's list
// stay sorted by position, shifting later entries as needed.
func (ix *Index) Add(c byte, pos int16, slot uint32) {
	entries := ix.table[c]
	i, found := search(entries, pos)
	if !found {
		entries = insertAt(entries, i, entry{pos: pos, bm: bitmap.New()})
		ix.table[c] = entries
	}
	entries[i].bm.Add(slot)
}

// Remove deletes slot from (c, pos) if present. It never removes the
// position entry itself, even if the bitmap becomes empty — an absent slot
// at a previously-observed position is a normal, cheap-to-query state, and
// removing empty entries would just add churn for no correctness benefit.
func (ix *Index) Remove(c byte, pos int16, slot uint32) {
	entries := ix.table[c]
	i, found := search(entries, pos)
	if !found {
		return
	}
	entries[i].bm.Remove(slot)
}

// ForEachBitmap calls fn once per (byte, position) bitmap ever created,
// across every character. Used by compaction to subtract tombstoned slots
// from every bitmap, and by slot reincarnation to scrub stale membership.
func (ix *Index) ForEachBitmap(fn func(bm *bitmap.Bitmap)) {
	for c := 0; c < 256; c++ {
		for _, e := range ix.table[c] {
			fn(e.bm)
		}
	}
}

// RemoveSlotEverywhere scrubs slot from every bitmap in the index. This is
// the reincarnation primitive: before a popped free-list slot is reused for
// new data, any stale membership left over from its previous occupant must
// be cleared.
func (ix *Index) RemoveSlotEverywhere(slot uint32) {
	ix.ForEachBitmap(func(bm *bitmap.Bitmap) {
		bm.Remove(slot)
	})
}

// search returns the index of the entry with position pos in a
// position-sorted slice, or the insertion point that keeps it sorted if no
// such entry exists.
func search(entries []entry, pos int16) (index int, found bool) {
	lo, hi := 0, len(entries)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case entries[mid].pos < pos:
			lo = mid + 1
		case entries[mid].pos > pos:
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}

// insertAt inserts e at position i, shifting subsequent entries right.
func insertAt(entries []entry, i int, e entry) []entry {
	entries = append(entries, entry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = e
	return entries
}
