package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeInvalidInput represents client-side errors where the provided
	// data doesn't meet the system's requirements or constraints — a nil
	// config, a malformed Options value, and similar construction-time
	// mistakes.
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected system failures that don't fit
	// into other categories — invariant violations caught by the defensive
	// checks in internal/slotmgr, or bugs that shouldn't occur during normal
	// operation.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Index-core error codes extend the base taxonomy with this system's own
// failure mode: capacity exhaustion. Out-of-range slot references and
// null-input inserts are deliberately absent here — both are silent,
// non-error conditions, not members of this taxonomy.
const (
	// ErrorCodeCapacityExceeded indicates the slot count would exceed the
	// uint32 range. Fatal: the core aborts the operation, but records
	// already inserted remain consistent.
	ErrorCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"
)
