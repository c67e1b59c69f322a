// Package slotmgr implements the slot lifecycle: the record table (TID plus
// cached source string per slot), the tombstone bitmap, the free-list stack,
// CRUD counters, and threshold-triggered compaction.
//
// A slot is always in exactly one of three states — Live, Tombstoned, Free —
// and the manager is the sole place that mutates state transitions, since
// every other component (posindex, lenindex) only ever sees slot numbers,
// never lifecycle.
//
// Resolved ambiguity: a literal reading of "mark deleted" as pushing the
// slot onto the free list immediately conflicts with the invariant that
// bans free-list members from also being Tombstoned. This implementation
// resolves the tension in favor of the invariant: marking a slot deleted
// moves it to Tombstoned and leaves the free list untouched; only
// compaction moves Tombstoned slots to Free and pushes them onto the free
// list, once their bitmap membership has actually been scrubbed.
// Reincarnate still runs on every pop as a defensive no-op in the common
// case, so a future change to when slots join the free list can't silently
// reintroduce stale membership.
package slotmgr

import (
	"fmt"
	"math"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/crystalline/biscuitidx/internal/bitmap"
	"github.com/crystalline/biscuitidx/internal/lenindex"
	"github.com/crystalline/biscuitidx/internal/posindex"
	"github.com/crystalline/biscuitidx/internal/tid"
	"github.com/crystalline/biscuitidx/pkg/errors"
)

// State is the lifecycle state of a slot.
type State uint8

const (
	Free State = iota
	Live
	Tombstoned
)

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case Live:
		return "live"
	case Tombstoned:
		return "tombstoned"
	default:
		return "unknown"
	}
}

type slotRecord struct {
	id    tid.TID
	str   string
	state State
}

// Manager owns the record table and drives compaction. It holds references
// to the positional and length indexes because both reincarnation and
// compaction must strip a slot's membership out of every bitmap those
// structures hold.
type Manager struct {
	fwd  *posindex.Index
	rev  *posindex.Index
	lens *lenindex.Index

	records  []slotRecord
	freeList []uint32

	tombstones     *bitmap.Bitmap
	tombstoneCount int
	threshold      int

	inserts, updates, deletes int
	maxLenObserved            int

	log *zap.SugaredLogger
}

// New returns an empty slot manager bound to the given forward/reverse
// positional indexes and length index, compacting automatically once
// tombstoneCount reaches threshold. initialCapacity pre-sizes the record
// table to avoid reallocation churn during an initial bulk build; 0 leaves
// it to grow organically.
func New(fwd, rev *posindex.Index, lens *lenindex.Index, threshold, initialCapacity int, log *zap.SugaredLogger) *Manager {
	if threshold <= 0 {
		threshold = 1000
	}
	m := &Manager{
		fwd:        fwd,
		rev:        rev,
		lens:       lens,
		tombstones: bitmap.New(),
		threshold:  threshold,
		log:        log,
	}
	if initialCapacity > 0 {
		m.records = make([]slotRecord, 0, initialCapacity)
	}
	return m
}

// Allocate returns a slot number ready to receive new data: it prefers
// popping the free list, else grows the high-water mark. The returned
// slot's record is in the Free state; the caller commits TID and string via
// Commit once the positional/length indexes have been populated.
func (m *Manager) Allocate() (uint32, error) {
	if n := len(m.freeList); n > 0 {
		slot := m.freeList[n-1]
		m.freeList = m.freeList[:n-1]
		m.reincarnate(slot)
		return slot, nil
	}

	next := len(m.records)
	if next > math.MaxUint32 {
		return 0, errors.NewSlotCapacityExceededError(uint64(next), math.MaxUint32)
	}

	m.records = append(m.records, slotRecord{state: Free})
	return uint32(next), nil
}

// reincarnate strips any stale bitmap membership a reused slot might still
// carry and resets its record to a clean Free state. Under the resolved
// state model above this is a no-op in the common case — compaction already
// scrubbed the slot before it reached the free list — but it runs
// unconditionally because it is cheap relative to an Insert and it is the
// only thing standing between a future change to free-list timing and a
// slot-reuse correctness violation.
func (m *Manager) reincarnate(slot uint32) {
	m.fwd.RemoveSlotEverywhere(slot)
	m.rev.RemoveSlotEverywhere(slot)
	m.lens.ForEachBitmap(func(bm *bitmap.Bitmap) { bm.Remove(slot) })
	m.tombstones.Remove(slot)
	m.records[slot] = slotRecord{state: Free}
}

// Commit writes the TID and cached string for slot and marks it Live.
// Called once the caller has populated the positional and length indexes
// for the string's characters.
func (m *Manager) Commit(slot uint32, id tid.TID, str string) {
	m.records[slot] = slotRecord{id: id, str: str, state: Live}
	m.inserts++
	if l := len(str); l > m.maxLenObserved {
		m.maxLenObserved = l
	}
}

// Live reports whether slot is currently Live.
func (m *Manager) Live(slot uint32) bool {
	return slot < uint32(len(m.records)) && m.records[slot].state == Live
}

// TID returns slot's TID and whether the slot is Live.
func (m *Manager) TID(slot uint32) (tid.TID, bool) {
	if !m.Live(slot) {
		return tid.TID{}, false
	}
	return m.records[slot].id, true
}

// String returns slot's cached source string and whether the slot is Live.
// Used only by the rescan-on-reload path, never during query.
func (m *Manager) String(slot uint32) (string, bool) {
	if !m.Live(slot) {
		return "", false
	}
	return m.records[slot].str, true
}

// NumSlots returns the high-water mark N: the exclusive upper bound of
// allocated slot numbers.
func (m *Manager) NumSlots() int {
	return len(m.records)
}

// MaxLenObserved returns the longest Live record length ever committed.
func (m *Manager) MaxLenObserved() int {
	return m.maxLenObserved
}

// Tombstones returns the tombstone bitmap, read-only by convention —
// callers must not mutate the returned value. Used by the pattern engine to
// subtract pending deletions from a query result during post-processing.
func (m *Manager) Tombstones() *bitmap.Bitmap {
	return m.tombstones
}

// TombstoneCount returns the number of slots pending compaction.
func (m *Manager) TombstoneCount() int {
	return m.tombstoneCount
}

// MarkDeleted transitions slot from Live to Tombstoned. A no-op if the slot
// is already Tombstoned or Free — deletes never fail, they just have
// nothing left to do.
func (m *Manager) MarkDeleted(slot uint32) {
	if slot >= uint32(len(m.records)) {
		return
	}
	rec := &m.records[slot]
	if rec.state != Live {
		return
	}
	rec.state = Tombstoned
	m.tombstones.Add(slot)
	m.tombstoneCount++
}

// BulkDelete evaluates pred against every Live slot's TID, marking matches
// deleted, then compacts if the tombstone threshold has been crossed. pred
// may itself fail (e.g. a host-side predicate backed by its own I/O); a
// failure for one slot does not stop the scan — every remaining slot is
// still evaluated and every failure is aggregated via multierr so the
// caller sees all of them, not just the first. Returns the number of slots
// removed and the combined predicate error, if any.
func (m *Manager) BulkDelete(pred func(tid.TID) (bool, error)) (int, error) {
	removed := 0
	var errs error

	for s := range m.records {
		if m.records[s].state != Live {
			continue
		}
		shouldDelete, err := pred(m.records[s].id)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if shouldDelete {
			m.MarkDeleted(uint32(s))
			removed++
		}
	}
	m.deletes += removed

	if m.tombstoneCount >= m.threshold {
		if m.log != nil {
			m.log.Infow("tombstone threshold crossed, compacting",
				"tombstoneCount", m.tombstoneCount, "threshold", m.threshold)
		}
		m.Compact()
	}
	return removed, errs
}

// Compact performs, atomically with respect to queries, a bulk bitmap
// scrub: every bitmap in forward, reverse, and length structures loses its
// tombstoned members; cached strings for those slots are released; they
// transition to Free and join the free list; the tombstone set and count
// reset. Idempotent: a second call with the tombstone set already empty
// does nothing.
func (m *Manager) Compact() {
	if m.tombstones.IsEmpty() {
		return
	}

	t := m.tombstones
	m.fwd.ForEachBitmap(func(bm *bitmap.Bitmap) { bm.AndNotInPlace(t) })
	m.rev.ForEachBitmap(func(bm *bitmap.Bitmap) { bm.AndNotInPlace(t) })
	m.lens.ForEachBitmap(func(bm *bitmap.Bitmap) { bm.AndNotInPlace(t) })

	t.Iterate(func(s uint32) bool {
		m.records[s] = slotRecord{state: Free}
		m.freeList = append(m.freeList, s)
		return true
	})

	m.tombstones = bitmap.New()
	m.tombstoneCount = 0
}

// ForEachLive calls fn once per Live slot with its slot number, TID, and
// cached string, in ascending slot order. Used by the reload/rebuild path.
func (m *Manager) ForEachLive(fn func(slot uint32, id tid.TID, str string)) {
	for s, rec := range m.records {
		if rec.state == Live {
			fn(uint32(s), rec.id, rec.str)
		}
	}
}

// Stats is the slot-manager portion of the free-form diagnostic summary.
type Stats struct {
	TotalSlots     int
	LiveSlots      int
	TombstonedSlots int
	FreeSlots      int
	Inserts        int
	Updates        int
	Deletes        int
	TombstoneCount int
	MaxLenObserved int
}

// Stats computes a snapshot of the slot manager's counters and state
// distribution.
func (m *Manager) Stats() Stats {
	s := Stats{
		TotalSlots:     len(m.records),
		Inserts:        m.inserts,
		Updates:        m.updates,
		Deletes:        m.deletes,
		TombstoneCount: m.tombstoneCount,
		MaxLenObserved: m.maxLenObserved,
	}
	for _, rec := range m.records {
		switch rec.state {
		case Live:
			s.LiveSlots++
		case Tombstoned:
			s.TombstonedSlots++
		case Free:
			s.FreeSlots++
		}
	}
	return s
}

// CheckInvariants walks every slot and the free list, asserting I2, I3, and
// I5. It is a defensive check exercised by tests and by engine.Close, not
// by any insert, delete, or scan path.
func (m *Manager) CheckInvariants() error {
	n := len(m.records)
	freeSet := bitset.New(uint(n))

	for s, rec := range m.records {
		switch rec.state {
		case Tombstoned:
			if !m.tombstones.Contains(uint32(s)) {
				return errors.NewInvariantViolationError(
					"CheckInvariants", uint32(s), "Tombstoned slot absent from T (I3)")
			}
		case Free:
			freeSet.Set(uint(s))
		case Live:
			l := len(rec.str)
			if !m.lens.Eq(l).Contains(uint32(s)) {
				return errors.NewInvariantViolationError(
					"CheckInvariants", uint32(s), fmt.Sprintf("live slot of length %d missing from L_eq[%d] (I2)", l, l))
			}
			if !m.lens.Ge(l).Contains(uint32(s)) {
				return errors.NewInvariantViolationError(
					"CheckInvariants", uint32(s), fmt.Sprintf("live slot of length %d missing from L_ge[%d] (I2)", l, l))
			}
			if m.tombstones.Contains(uint32(s)) {
				return errors.NewInvariantViolationError(
					"CheckInvariants", uint32(s), "live slot appears in T (I3)")
			}
		}
	}

	seen := bitset.New(uint(n))
	for _, s := range m.freeList {
		if seen.Test(uint(s)) {
			return errors.NewInvariantViolationError(
				"CheckInvariants", s, "slot appears twice in the free list")
		}
		seen.Set(uint(s))
		if !freeSet.Test(uint(s)) {
			return errors.NewInvariantViolationError(
				"CheckInvariants", s, "slot is in the free list but not Free (I5)")
		}
	}

	return nil
}
