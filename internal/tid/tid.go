// Package tid defines the opaque tuple identifier the host supplies for
// each indexed record, and the ascending ordering the pattern engine sorts
// match results by.
package tid

import "sort"

// TID is the fixed-size locator the host uses to find a tuple on the heap.
// Only Block and Offset participate in ordering, which every scan result
// is sorted by before it's handed back to the host.
type TID struct {
	Block  uint32
	Offset uint32
}

// Less reports whether t sorts before other in ascending (block, offset)
// order.
func (t TID) Less(other TID) bool {
	if t.Block != other.Block {
		return t.Block < other.Block
	}
	return t.Offset < other.Offset
}

// Sort orders ids ascending by (block, offset) in place.
func Sort(ids []TID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Less(ids[j])
	})
}
