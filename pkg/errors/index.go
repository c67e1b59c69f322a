package errors

// IndexError provides specialized error handling for pattern-matching and
// slot-management operations. It extends the base error system with
// context that pinpoints exactly what the engine was doing when the error
// occurred — which pattern, which slot, which phase of matching.
type IndexError struct {
	// Embed the base error to inherit all standard error functionality
	// including error chaining, structured details, and error codes.
	*baseError

	// Identifies which pattern was being matched when the error occurred.
	pattern string

	// Identifies which slot was being processed when the error occurred,
	// if applicable.
	slot uint32

	// Describes what operation was being performed when the error
	// occurred (e.g. "Insert", "BulkDelete", "BeginScan", "Compact").
	operation string

	// Captures the number of live slots in the index at the time of the
	// error, useful for diagnosing capacity and performance issues.
	liveSlots int
}

// NewIndexError creates a new index-specific error with the provided context.
func NewIndexError(err error, code ErrorCode, msg string) *IndexError {
	return &IndexError{
		baseError: NewBaseError(err, code, msg),
	}
}

// WithMessage updates the error message while maintaining the IndexError type.
func (ie *IndexError) WithMessage(msg string) *IndexError {
	ie.baseError.WithMessage(msg)
	return ie
}

// WithCode sets the error code while preserving the IndexError type.
func (ie *IndexError) WithCode(code ErrorCode) *IndexError {
	ie.baseError.WithCode(code)
	return ie
}

// WithDetail adds contextual information while maintaining the IndexError type.
func (ie *IndexError) WithDetail(key string, value any) *IndexError {
	ie.baseError.WithDetail(key, value)
	return ie
}

// WithPattern records which pattern was being matched when the error occurred.
func (ie *IndexError) WithPattern(pattern string) *IndexError {
	ie.pattern = pattern
	return ie
}

// WithSlot records which slot was being processed when the error occurred.
func (ie *IndexError) WithSlot(slot uint32) *IndexError {
	ie.slot = slot
	return ie
}

// WithOperation records what operation was being performed.
func (ie *IndexError) WithOperation(operation string) *IndexError {
	ie.operation = operation
	return ie
}

// WithLiveSlots captures the number of live slots when the error occurred.
func (ie *IndexError) WithLiveSlots(n int) *IndexError {
	ie.liveSlots = n
	return ie
}

// Pattern returns the pattern that was being matched when the error occurred.
func (ie *IndexError) Pattern() string {
	return ie.pattern
}

// Slot returns the slot number associated with the error.
func (ie *IndexError) Slot() uint32 {
	return ie.slot
}

// Operation returns the name of the operation that was being performed.
func (ie *IndexError) Operation() string {
	return ie.operation
}

// LiveSlots returns the live-slot count when the error occurred.
func (ie *IndexError) LiveSlots() int {
	return ie.liveSlots
}

// NewInvariantViolationError builds the error for a defensive consistency
// check (invariants I1-I5) failing — a condition that should be unreachable
// in correct operation.
func NewInvariantViolationError(operation string, slot uint32, detail string) *IndexError {
	return NewIndexError(nil, ErrorCodeInternal, "index invariant violated").
		WithOperation(operation).
		WithSlot(slot).
		WithDetail("violation", detail)
}
