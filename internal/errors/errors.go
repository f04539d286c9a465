package errors

import "errors"

// Sentinel errors for common failure modes.
var (
	ErrConnectionFailed    = errors.New("connection failed")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrLaunchFailed        = errors.New("could not open link")
	ErrUserCancelled       = errors.New("user cancelled operation")
	ErrTimeout             = errors.New("operation timed out")
)

// ValidationError represents a field validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// DeserializationError reports a stored document that could not be read,
// either because it is malformed or because it has the wrong shape.
type DeserializationError struct {
	Source string // What was being read, e.g. "connection definitions"
	Err    error
}

func (e *DeserializationError) Error() string {
	if e.Source == "" {
		return "deserialize: " + e.Err.Error()
	}
	return "deserialize " + e.Source + ": " + e.Err.Error()
}

// Unwrap returns the underlying decoder error.
func (e *DeserializationError) Unwrap() error {
	return e.Err
}
