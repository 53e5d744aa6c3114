package errors

import "fmt"

// Categories. Every concrete error below wraps exactly one of them,
// so callers can match either the category or the precise reason.
var (
	ErrAuth        = fmt.Errorf("auth error")
	ErrSession     = fmt.Errorf("session error")
	ErrMatch       = fmt.Errorf("match error")
	ErrValidation  = fmt.Errorf("validation error")
	ErrPersistence = fmt.Errorf("persistence error")
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrAuth)
	ErrPasswordMismatch   = fmt.Errorf("%w: passwords do not match", ErrAuth)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrAuth)
)

var (
	ErrSessionNotFound = fmt.Errorf("%w: session not found", ErrSession)
	ErrAlreadyJoined   = fmt.Errorf("%w: already joined", ErrSession)
	ErrSessionFull     = fmt.Errorf("%w: session is full", ErrSession)
)

var (
	ErrAlreadyConnected = fmt.Errorf("%w: already connected", ErrMatch)
	ErrSelfConnection   = fmt.Errorf("%w: cannot connect with yourself", ErrMatch)
)

var (
	ErrEmptyContent = fmt.Errorf("%w: content is empty", ErrValidation)
	ErrInvalidInput = fmt.Errorf("%w: invalid input", ErrValidation)
	ErrUserNotFound = fmt.Errorf("%w: user not found", ErrValidation)
)

var (
	ErrWriteFailed     = fmt.Errorf("%w: write failed", ErrPersistence)
	ErrCorruptSnapshot = fmt.Errorf("%w: corrupt snapshot", ErrPersistence)
	ErrKeyNotFound     = fmt.Errorf("%w: key not found", ErrPersistence)
)
