// Package options provides data structures and functions for configuring a
// biscuitidx index instance. It defines the tunables that control slot
// reuse, compaction timing, and the logger each instance uses — the core
// itself is memory-resident, so there is no directory path or segment
// configuration here, unlike the file-backed engine this pattern is
// borrowed from.
package options

import (
	"go.uber.org/zap"
)

// Defines the configuration parameters for a biscuitidx index instance.
// It provides control over slot-reuse/compaction behavior and observability.
type Options struct {
	// TombstoneCleanupThreshold is the number of pending tombstones that
	// triggers an automatic compaction pass. Recommended default is 1000.
	//
	// Default: 1000
	TombstoneCleanupThreshold int `json:"tombstoneCleanupThreshold"`

	// MaxRecordLength is the byte length records are truncated to on
	// ingest. 256 is the hard ceiling; it is exposed as a tunable for
	// symmetry with the rest of this struct and because a host embedding a
	// shorter truncation length is a plausible extension, but values above
	// 256 are rejected since the pattern matcher never looks up positions
	// at or beyond 256.
	//
	// Default: 256
	MaxRecordLength int `json:"maxRecordLength"`

	// InitialSlotCapacity pre-sizes the slot manager's record table to
	// avoid reallocation churn during an initial bulk build.
	//
	// Default: 1024
	InitialSlotCapacity int `json:"initialSlotCapacity"`

	// Logger is the structured logger used by every subsystem. Required.
	Logger *zap.SugaredLogger `json:"-"`
}

// OptionFunc is a function type that modifies an index instance's configuration.
type OptionFunc func(*Options)

// Applies a predefined set of default configuration values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.TombstoneCleanupThreshold = opts.TombstoneCleanupThreshold
		o.MaxRecordLength = opts.MaxRecordLength
		o.InitialSlotCapacity = opts.InitialSlotCapacity
	}
}

// WithTombstoneCleanupThreshold sets the pending-tombstone count that
// triggers automatic compaction.
func WithTombstoneCleanupThreshold(threshold int) OptionFunc {
	return func(o *Options) {
		if threshold > 0 {
			o.TombstoneCleanupThreshold = threshold
		}
	}
}

// WithMaxRecordLength sets the byte length records are truncated to.
// Values outside (0, MaxAllowedRecordLength] are ignored.
func WithMaxRecordLength(length int) OptionFunc {
	return func(o *Options) {
		if length > 0 && length <= MaxAllowedRecordLength {
			o.MaxRecordLength = length
		}
	}
}

// WithInitialSlotCapacity sets the pre-allocated slot capacity.
func WithInitialSlotCapacity(capacity int) OptionFunc {
	return func(o *Options) {
		if capacity > 0 {
			o.InitialSlotCapacity = capacity
		}
	}
}

// WithLogger sets the structured logger used by the index instance.
func WithLogger(logger *zap.SugaredLogger) OptionFunc {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}
