package options

const (
	// MaxAllowedRecordLength is the hard ceiling on MaxRecordLength: the
	// pattern matcher never looks up positions at or beyond 256, so it
	// cannot be raised at runtime.
	MaxAllowedRecordLength = 256

	// DefaultTombstoneCleanupThreshold is the pending-tombstone count that
	// triggers automatic compaction when no override is given.
	DefaultTombstoneCleanupThreshold = 1000

	// DefaultMaxRecordLength is the byte length records are truncated to
	// when no override is given.
	DefaultMaxRecordLength = 256

	// DefaultInitialSlotCapacity is the pre-allocated slot capacity used
	// when no override is given.
	DefaultInitialSlotCapacity = 1024
)

// Holds the default configuration settings for a biscuitidx index instance.
// Logger is intentionally left nil here: callers are expected to supply one
// via WithLogger, keeping tunables separate from observability wiring.
var defaultOptions = Options{
	TombstoneCleanupThreshold: DefaultTombstoneCleanupThreshold,
	MaxRecordLength:           DefaultMaxRecordLength,
	InitialSlotCapacity:       DefaultInitialSlotCapacity,
}

// NewDefaultOptions returns the default configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
