// Package errors gives every failure mode in the index core a structured,
// programmatically inspectable shape instead of an opaque string.
//
// The system recognizes that different parts of the core fail in
// fundamentally different ways and need different contextual information for
// diagnosis. A construction-time validation error needs to know which field
// failed and what rule was violated. A capacity error needs to know how many
// slots were requested against what limit. An index-operation error needs to
// know which pattern or slot was involved. By capturing this domain-specific
// context at the point of failure, the system lets callers make much more
// intelligent decisions than parsing error strings ever could.
//
// Error Classification and Codes:
//
// The error codes in codes.go classify this system's fatal/reported
// conditions: ErrorCodeCapacityExceeded among them. Out-of-range slot
// references, null-input inserts, and empty patterns are deliberately NOT
// represented here — they're silent, non-error conditions handled by
// ordinary control flow, not by this package.
//
// Usage Patterns:
//
// For error creation, build errors with comprehensive context at the point
// of failure using the fluent With* methods. For error handling, use the
// Is*/As* helpers below to recover typed context without parsing messages.
package errors

import (
	stdErrors "errors"
)

// IsValidationError checks if the given error is a ValidationError or contains one in its error chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsCapacityError checks if the given error is a CapacityError or contains one in its error chain.
// Capacity errors indicate the slot count would exceed the uint32 range.
func IsCapacityError(err error) bool {
	var ce *CapacityError
	return stdErrors.As(err, &ce)
}

// IsIndexError identifies errors that occurred during core index operations
// such as pattern matching, slot allocation, or compaction. Index errors
// provide context about which pattern or slot was involved, essential for
// debugging query-time failures.
func IsIndexError(err error) bool {
	var ie *IndexError
	return stdErrors.As(err, &ie)
}

// AsValidationError safely extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsCapacityError safely extracts a CapacityError from an error chain.
func AsCapacityError(err error) (*CapacityError, bool) {
	var ce *CapacityError
	if stdErrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// AsIndexError safely extracts an IndexError from an error chain.
func AsIndexError(err error) (*IndexError, bool) {
	var ie *IndexError
	if stdErrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports it, or
// returns ErrorCodeInternal for errors that don't carry a specific code.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	if ce, ok := AsCapacityError(err); ok {
		return ce.Code()
	}
	if ie, ok := AsIndexError(err); ok {
		return ie.Code()
	}
	return ErrorCodeInternal
}

// GetErrorDetails extracts structured details from any error that supports
// them, returning an empty map for errors without details.
func GetErrorDetails(err error) map[string]any {
	if ve, ok := AsValidationError(err); ok {
		if details := ve.Details(); details != nil {
			return details
		}
	}
	if ce, ok := AsCapacityError(err); ok {
		if details := ce.Details(); details != nil {
			return details
		}
	}
	if ie, ok := AsIndexError(err); ok {
		if details := ie.Details(); details != nil {
			return details
		}
	}
	return make(map[string]any)
}
