// Package engine coordinates the four structural components — positional
// forward/reverse indexes, the length index, and the slot manager — into a
// single index relation: one Engine value per host relation, owned by the
// host. Mutating calls run one at a time; read-only scans may run
// concurrently with each other.
//
// Index, storage, and compaction are coordinated behind one struct with a
// Close lifecycle; this Engine coordinates the index core's own four
// components behind the same shape, with compaction folded into the slot
// manager instead of living as a separate subsystem.
package engine

import (
	stdErrors "errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/crystalline/biscuitidx/internal/lenindex"
	"github.com/crystalline/biscuitidx/internal/pattern"
	"github.com/crystalline/biscuitidx/internal/posindex"
	"github.com/crystalline/biscuitidx/internal/slotmgr"
	"github.com/crystalline/biscuitidx/internal/tid"
	"github.com/crystalline/biscuitidx/pkg/errors"
	"github.com/crystalline/biscuitidx/pkg/options"
)

// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
var ErrEngineClosed = stdErrors.New("operation failed: cannot access closed index engine")

// Record is one (TID, string) pair as the host supplies it to Build. A nil
// Str is the null-input case: Build skips it without error and does not
// include it in the count it returns.
type Record struct {
	ID  tid.TID
	Str *string
}

// Engine is the coordinating struct. All mutating operations take the
// write lock; BeginScan takes the read lock only for the duration of
// bitmap composition, copying the result out before releasing it.
type Engine struct {
	opts *options.Options
	log  *zap.SugaredLogger

	closed atomic.Bool
	mu     sync.RWMutex

	fwd     *posindex.Index
	rev     *posindex.Index
	lens    *lenindex.Index
	slots   *slotmgr.Manager
	matcher *pattern.Matcher
}

// Config holds the parameters needed to initialize a new Engine.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// New creates and initializes a new Engine instance with the provided configuration.
func New(config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, errors.NewValidationError(
			nil, errors.ErrorCodeInvalidInput, "engine configuration is required",
		).WithField("config").WithRule("required").WithProvided(config)
	}

	fwd := posindex.New()
	rev := posindex.New()
	lens := lenindex.New()
	slots := slotmgr.New(fwd, rev, lens, config.Options.TombstoneCleanupThreshold, config.Options.InitialSlotCapacity, config.Logger)

	return &Engine{
		opts:    config.Options,
		log:     config.Logger,
		fwd:     fwd,
		rev:     rev,
		lens:    lens,
		slots:   slots,
		matcher: pattern.NewMatcher(fwd, rev, lens),
	}, nil
}

// Build populates the index from an initial batch of records. Folded into
// a single pass rather than a scan-then-insert two-pass build — the dense
// length arrays grow lazily as each record is inserted, which avoids the
// need to pre-size them from a first pass's observed max length.
func (e *Engine) Build(records []Record) (int, error) {
	if e.closed.Load() {
		return 0, ErrEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for _, r := range records {
		if r.Str == nil {
			continue
		}
		if _, err := e.insertLocked(r.ID, *r.Str); err != nil {
			return count, err
		}
		count++
	}

	e.log.Infow("build complete", "recordsIndexed", count)
	return count, nil
}

// Insert adds one (string, TID) pair to the index. A nil str is a no-op
// that succeeds.
func (e *Engine) Insert(id tid.TID, str *string) (bool, error) {
	if e.closed.Load() {
		return false, ErrEngineClosed
	}
	if str == nil {
		return true, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.insertLocked(id, *str); err != nil {
		return false, err
	}
	return true, nil
}

// insertLocked performs the allocate/populate/commit sequence. Callers must
// hold mu for writing.
func (e *Engine) insertLocked(id tid.TID, str string) (uint32, error) {
	if limit := e.opts.MaxRecordLength; limit > 0 && len(str) > limit {
		str = str[:limit]
	}

	slot, err := e.slots.Allocate()
	if err != nil {
		return 0, err
	}

	ln := len(str)
	for p := 0; p < ln; p++ {
		c := str[p]
		e.fwd.Add(c, int16(p), slot)
		e.rev.Add(c, int16(p-ln), slot)
	}
	e.lens.AddLength(slot, ln)
	e.slots.Commit(slot, id, str)

	return slot, nil
}

// BulkDelete evaluates shouldDelete against every Live slot's TID, marking
// matches deleted and compacting if the tombstone threshold is crossed.
// Predicate failures for individual slots are aggregated rather than
// aborting the scan.
func (e *Engine) BulkDelete(shouldDelete func(tid.TID) (bool, error)) (int, error) {
	if e.closed.Load() {
		return 0, ErrEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	removed, err := e.slots.BulkDelete(shouldDelete)
	if removed > 0 {
		e.log.Infow("bulk delete complete", "tuplesRemoved", removed)
	}
	return removed, err
}

// Scan is an open query result: a sorted TID array and a cursor.
type Scan struct {
	tids   []tid.TID
	cursor int
}

// BeginScan parses patternStr, composes the matching bitmap, subtracts
// tombstones, materializes TIDs, and sorts them ascending by (block,
// offset).
func (e *Engine) BeginScan(patternStr string) (*Scan, error) {
	if e.closed.Load() {
		return nil, ErrEngineClosed
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	p := pattern.Parse(patternStr)
	result := e.matcher.Evaluate(p)

	if e.slots.TombstoneCount() > 0 {
		result.AndNotInPlace(e.slots.Tombstones())
	}

	tids := make([]tid.TID, 0, result.Count())
	result.Iterate(func(slot uint32) bool {
		if t, ok := e.slots.TID(slot); ok {
			tids = append(tids, t)
		}
		return true
	})
	tid.Sort(tids)

	return &Scan{tids: tids}, nil
}

// GetNextTID returns the next TID in the scan, advancing the cursor, or
// reports exhaustion.
func (s *Scan) GetNextTID() (tid.TID, bool) {
	if s.cursor >= len(s.tids) {
		return tid.TID{}, false
	}
	t := s.tids[s.cursor]
	s.cursor++
	return t, true
}

// GetAllTIDs returns every TID in the scan, in ascending order, without
// touching the cursor.
func (s *Scan) GetAllTIDs() []tid.TID {
	return s.tids
}

// EndScan releases the scan's result buffer.
func (s *Scan) EndScan() {
	s.tids = nil
}

// Rebuild recovers index state from the slot manager's own cached strings
// rather than a host-driven heap rescan — the cached string exists solely
// for this rescan-on-reload path; the heap rescan itself stays a host
// concern. Slot numbers are not preserved across a rebuild.
func (e *Engine) Rebuild() error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	type cachedRecord struct {
		id  tid.TID
		str string
	}
	var saved []cachedRecord
	e.slots.ForEachLive(func(_ uint32, id tid.TID, str string) {
		saved = append(saved, cachedRecord{id: id, str: str})
	})

	fwd := posindex.New()
	rev := posindex.New()
	lens := lenindex.New()
	slots := slotmgr.New(fwd, rev, lens, e.opts.TombstoneCleanupThreshold, e.opts.InitialSlotCapacity, e.log)

	e.fwd, e.rev, e.lens, e.slots = fwd, rev, lens, slots
	e.matcher = pattern.NewMatcher(fwd, rev, lens)

	for _, r := range saved {
		if _, err := e.insertLocked(r.id, r.str); err != nil {
			return err
		}
	}
	return nil
}

// Stats returns a free-form diagnostic summary — not a stable wire format.
func (e *Engine) Stats() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := e.slots.Stats()
	return fmt.Sprintf(
		"biscuitidx: slots total=%d live=%d tombstoned=%d free=%d | "+
			"inserts=%d updates=%d deletes=%d tombstoneCount=%d | maxLenObserved=%d",
		s.TotalSlots, s.LiveSlots, s.TombstonedSlots, s.FreeSlots,
		s.Inserts, s.Updates, s.Deletes, s.TombstoneCount, s.MaxLenObserved,
	)
}

// Close tears down the engine, running a defensive invariant check across
// its component structures before releasing them. Two independent checks
// are aggregated via multierr so a caller sees every violation, not just
// the first.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var err error
	if ierr := e.slots.CheckInvariants(); ierr != nil {
		err = multierr.Append(err, ierr)
	}
	// MaxObservedLength is -1 on a length index that never saw an insert,
	// which is consistent with any MaxLenObserved (0 by default) — the
	// check only applies once at least one record has actually been indexed.
	if maxLen := e.lens.MaxObservedLength(); maxLen >= 0 && maxLen < e.slots.MaxLenObserved() {
		err = multierr.Append(err, errors.NewInvariantViolationError(
			"Close", 0, fmt.Sprintf(
				"length index capacity %d below max observed record length %d (I4)",
				maxLen, e.slots.MaxLenObserved())))
	}

	e.fwd, e.rev, e.lens, e.slots, e.matcher = nil, nil, nil, nil, nil
	return err
}
