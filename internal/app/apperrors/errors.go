package apperrors

import "fmt"

// Sentinel errors of the core. Handlers map these onto the HTTP error
// taxonomy; the core itself never knows about status codes.
var (
	// ErrInvalidAudio marks empty or unreadable probe/sample audio. It is
	// reported to the caller and is never fatal to the process.
	ErrInvalidAudio = New("invalid audio")

	// ErrEmptyProfile is returned by an aggregate rebuild when no sample of
	// the profile survives encoding.
	ErrEmptyProfile = New("profile has no usable samples")

	// Store consistency errors. The triggering operation is aborted with no
	// partial mutation left visible.
	ErrNotFound = New("not found")
	ErrConflict = New("already exists")

	// Meeting pipeline errors.
	ErrNoAudio             = New("no audio chunks")
	ErrMergeFailed         = New("audio merge failed")
	ErrTranscriptionFailed = New("transcription failed")

	// ErrProviderFailure marks an embedding or transcription backend error,
	// reported together with the provider diagnostic text.
	ErrProviderFailure = New("provider failure")
)

// Error is a message plus an optional cause, comparable through errors.Is.
type Error struct {
	message string
	cause   error
}

// New creates a new sentinel error.
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap attaches context to a sentinel so that errors.Is still matches it.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{message: message, cause: err}
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{message: fmt.Sprintf(format, args...), cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}
