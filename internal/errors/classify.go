package errors

import (
	"context"
	"errors"
)

// ErrorSeverity indicates the severity of an error for UI presentation.
type ErrorSeverity int

const (
	SeverityInfo    ErrorSeverity = iota // User should know, not blocking
	SeverityWarning                      // Degraded functionality
	SeverityError                        // Operation failed, can retry
	SeverityFatal                        // Application must exit
)

// ErrorAction represents a user action that can be taken in response to an error.
type ErrorAction struct {
	Label   string
	Handler func()
}

// UIError wraps an error with UI-friendly presentation metadata.
type UIError struct {
	Err      error
	Severity ErrorSeverity
	Title    string        // Short user-facing title
	Message  string        // Detailed user-facing message
	Recovery []string      // Suggested actions (bullet points)
	Actions  []ErrorAction // Buttons for user actions
	Details  string        // Technical details (collapsed by default)
}

func (e UIError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Title
}

// Unwrap returns the underlying error.
func (e UIError) Unwrap() error {
	return e.Err
}

// ClassifyError converts a standard error into a UIError with appropriate
// severity, title, message, and recovery suggestions.
func ClassifyError(err error) *UIError {
	if err == nil {
		return nil
	}

	var uiErr *UIError
	if errors.As(err, &uiErr) {
		return uiErr
	}

	var deserErr *DeserializationError
	if errors.As(err, &deserErr) {
		return &UIError{
			Err:      err,
			Severity: SeverityFatal,
			Title:    "Connection File Unreadable",
			Message:  "The saved connection definitions could not be loaded, so none are shown.",
			Recovery: []string{
				"Fix or remove the connections file and restart",
				"Restore the file from a backup",
			},
			Details: err.Error(),
		}
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, ErrTimeout):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Connection Timeout",
			Message:  "The database did not respond in time.",
			Recovery: []string{"Try again", "Increase the connect timeout in Preferences"},
			Actions:  []ErrorAction{{Label: "Retry"}, {Label: "Settings"}},
			Details:  err.Error(),
		}

	case errors.Is(err, context.Canceled), errors.Is(err, ErrUserCancelled):
		return &UIError{
			Err:      err,
			Severity: SeverityInfo,
			Title:    "Cancelled",
			Message:  "The operation was cancelled.",
			Recovery: []string{},
		}

	case errors.Is(err, ErrUnsupportedProvider):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Unknown Provider",
			Message:  "This connection uses a provider that is not available.",
			Recovery: []string{"Edit the connection and pick a listed provider"},
			Actions:  []ErrorAction{{Label: "Edit Connection"}},
			Details:  err.Error(),
		}

	case errors.Is(err, ErrConnectionFailed):
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Connection Failed",
			Message:  "Unable to connect to the database.",
			Recovery: []string{
				"Check that the database server is running",
				"Verify the connection string",
				"Check your network connection",
			},
			Actions: []ErrorAction{{Label: "Retry"}, {Label: "Edit Connection"}},
			Details: err.Error(),
		}

	case errors.Is(err, ErrLaunchFailed):
		return &UIError{
			Err:      err,
			Severity: SeverityWarning,
			Title:    "Could Not Open Link",
			Message:  "No application is registered to open this link.",
			Recovery: []string{"Copy the address from the details and open it manually"},
			Details:  err.Error(),
		}
	}

	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		return &UIError{
			Err:      err,
			Severity: SeverityError,
			Title:    "Validation Error",
			Message:  validationErr.Message,
			Recovery: []string{"Correct the field value and try again"},
			Details:  err.Error(),
		}
	}

	return &UIError{
		Err:      err,
		Severity: SeverityError,
		Title:    "Unexpected Error",
		Message:  "An unexpected error occurred.",
		Recovery: []string{"Try again"},
		Details:  err.Error(),
	}
}
