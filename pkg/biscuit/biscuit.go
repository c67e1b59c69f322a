// Package biscuit is the public entry point for the wildcard-matching
// secondary index core: a position-indexed compressed bitmap engine that a
// host database embeds, supplying tuples and tuple identifiers and
// receiving back matching TID sets for LIKE-style patterns.
//
// Host integration — access method registration, planner cost hooks, heap
// scanning, on-disk persistence — is explicitly out of scope; Index exposes
// exactly the host<->core operations a query executor needs to drive a scan.
package biscuit

import (
	"github.com/crystalline/biscuitidx/internal/engine"
	"github.com/crystalline/biscuitidx/internal/tid"
	"github.com/crystalline/biscuitidx/pkg/logger"
	"github.com/crystalline/biscuitidx/pkg/options"
)

// TID is the opaque fixed-size tuple locator the host supplies and receives
// back from queries.
type TID = tid.TID

// Record is one (TID, string) pair for a bulk Build call. A nil Str is a
// null input: skipped without error and not included in Build's count.
type Record = engine.Record

// Index is a single wildcard-matching secondary index instance over one
// text column. It wraps the coordinating engine and the options it was
// built with.
type Index struct {
	engine  *engine.Engine
	options *options.Options
}

// NewIndex creates and initializes a new Index for the given service name
// (used only to tag its logger), applying any supplied options over the
// defaults.
func NewIndex(service string, opts ...options.OptionFunc) (*Index, error) {
	log := logger.New(service)

	cfg := options.NewDefaultOptions()
	cfg.Logger = log
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = log
	}

	eng, err := engine.New(&engine.Config{Options: &cfg, Logger: cfg.Logger})
	if err != nil {
		return nil, err
	}

	return &Index{engine: eng, options: &cfg}, nil
}

// Build populates the index from an initial batch of (TID, string) records
// and returns the number indexed.
func (idx *Index) Build(records []Record) (int, error) {
	return idx.engine.Build(records)
}

// Insert adds one record to the index. A nil str is a no-op that succeeds.
func (idx *Index) Insert(id TID, str *string) (bool, error) {
	return idx.engine.Insert(id, str)
}

// BulkDelete marks every live record whose TID satisfies shouldDelete as
// deleted, compacting automatically once the tombstone threshold is
// crossed, and returns the number of tuples removed.
func (idx *Index) BulkDelete(shouldDelete func(TID) (bool, error)) (int, error) {
	return idx.engine.BulkDelete(shouldDelete)
}

// Scan is an open query result: a sorted TID array plus a cursor.
type Scan struct {
	inner *engine.Scan
}

// BeginScan evaluates pattern against the index and returns a scan handle
// carrying the sorted TID array for the match.
func (idx *Index) BeginScan(pattern string) (*Scan, error) {
	s, err := idx.engine.BeginScan(pattern)
	if err != nil {
		return nil, err
	}
	return &Scan{inner: s}, nil
}

// GetNextTID returns the next TID in the scan, or reports exhaustion.
func (s *Scan) GetNextTID() (TID, bool) {
	return s.inner.GetNextTID()
}

// GetAllTIDs returns every TID the scan matched, in ascending order.
func (s *Scan) GetAllTIDs() []TID {
	return s.inner.GetAllTIDs()
}

// EndScan releases the scan's result buffer.
func (s *Scan) EndScan() {
	s.inner.EndScan()
}

// Rebuild recovers index state from the engine's own cached strings instead
// of a host-driven heap rescan.
func (idx *Index) Rebuild() error {
	return idx.engine.Rebuild()
}

// Stats returns a free-form diagnostic summary; not a stable wire format.
func (idx *Index) Stats() string {
	return idx.engine.Stats()
}

// Close tears down the index, running a defensive invariant check before
// releasing its structures.
func (idx *Index) Close() error {
	return idx.engine.Close()
}
