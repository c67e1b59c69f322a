package errors

// baseError is the common shape every error type in this package embeds:
// a wrapped cause, a display message, a programmatic code, and a lazily
// allocated detail bag for structured-logging fields.
type baseError struct {
	cause   error
	message string
	code    ErrorCode
	details map[string]any
}

// NewBaseError builds a baseError around the given cause, code, and message.
func NewBaseError(err error, code ErrorCode, msg string) *baseError {
	return &baseError{cause: err, code: code, message: msg}
}

// WithMessage replaces the display message.
func (e *baseError) WithMessage(msg string) *baseError {
	e.message = msg
	return e
}

// WithCode replaces the error code.
func (e *baseError) WithCode(code ErrorCode) *baseError {
	e.code = code
	return e
}

// WithDetail attaches one structured field, allocating the detail map on
// first use.
func (e *baseError) WithDetail(key string, value any) *baseError {
	if e.details == nil {
		e.details = make(map[string]any)
	}
	e.details[key] = value
	return e
}

// Error implements the error interface.
func (e *baseError) Error() string {
	return e.message
}

// Unwrap exposes the wrapped cause to errors.Is/errors.As.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Code returns the error's programmatic category.
func (e *baseError) Code() ErrorCode {
	return e.code
}

// Details returns the error's structured fields. The caller gets the
// live map, not a copy.
func (e *baseError) Details() map[string]any {
	return e.details
}
