package errors

// CapacityError is a specialized error type for slot-capacity exhaustion.
// It embeds baseError to inherit all the standard error functionality, then
// adds context that pinpoints exactly how the request overran the limit.
// Fatal, but records already inserted remain consistent.
type CapacityError struct {
	*baseError
	requestedSlot uint64 // The slot number that would have been allocated.
	limit         uint64 // The maximum slot number the core supports (uint32 max).
}

// NewCapacityError creates a new capacity-specific error.
func NewCapacityError(err error, code ErrorCode, msg string) *CapacityError {
	return &CapacityError{baseError: NewBaseError(err, code, msg)}
}

// WithRequestedSlot records the slot number that allocation would have produced.
func (ce *CapacityError) WithRequestedSlot(slot uint64) *CapacityError {
	ce.requestedSlot = slot
	return ce
}

// WithLimit records the maximum slot number the core supports.
func (ce *CapacityError) WithLimit(limit uint64) *CapacityError {
	ce.limit = limit
	return ce
}

// RequestedSlot returns the slot number that allocation would have produced.
func (ce *CapacityError) RequestedSlot() uint64 {
	return ce.requestedSlot
}

// Limit returns the maximum slot number the core supports.
func (ce *CapacityError) Limit() uint64 {
	return ce.limit
}

// NewSlotCapacityExceededError builds the standard capacity-exhaustion error
// for an allocation attempt that would overrun the uint32 slot space.
func NewSlotCapacityExceededError(requestedSlot, limit uint64) *CapacityError {
	return NewCapacityError(
		nil, ErrorCodeCapacityExceeded, "slot count would exceed maximum addressable slots",
	).WithRequestedSlot(requestedSlot).WithLimit(limit)
}
