package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantTitle    string
		wantSeverity ErrorSeverity
	}{
		{
			name:         "unreadable file",
			err:          fmt.Errorf("load: %w", &DeserializationError{Source: "connection definitions", Err: errors.New("EOF")}),
			wantTitle:    "Connection File Unreadable",
			wantSeverity: SeverityFatal,
		},
		{
			name:         "deadline",
			err:          fmt.Errorf("ping: %w", context.DeadlineExceeded),
			wantTitle:    "Connection Timeout",
			wantSeverity: SeverityError,
		},
		{
			name:         "cancelled",
			err:          context.Canceled,
			wantTitle:    "Cancelled",
			wantSeverity: SeverityInfo,
		},
		{
			name:         "unknown provider",
			err:          fmt.Errorf("%w: System.Data.OleDb", ErrUnsupportedProvider),
			wantTitle:    "Unknown Provider",
			wantSeverity: SeverityError,
		},
		{
			name:         "connection failed",
			err:          fmt.Errorf("%w: ping: refused", ErrConnectionFailed),
			wantTitle:    "Connection Failed",
			wantSeverity: SeverityError,
		},
		{
			name:         "launch failed",
			err:          fmt.Errorf("%w: no handler", ErrLaunchFailed),
			wantTitle:    "Could Not Open Link",
			wantSeverity: SeverityWarning,
		},
		{
			name:         "validation",
			err:          ValidationError{Field: "Name", Message: "name is required"},
			wantTitle:    "Validation Error",
			wantSeverity: SeverityError,
		},
		{
			name:         "anything else",
			err:          errors.New("disk on fire"),
			wantTitle:    "Unexpected Error",
			wantSeverity: SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantTitle, got.Title)
			assert.Equal(t, tt.wantSeverity, got.Severity)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassifyError_Nil(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))
}

func TestClassifyError_PassesUIErrorThrough(t *testing.T) {
	uiErr := &UIError{Title: "Custom"}
	assert.Same(t, uiErr, ClassifyError(fmt.Errorf("wrapped: %w", uiErr)))
}

func TestValidationMessageIsShown(t *testing.T) {
	got := ClassifyError(ValidationError{Field: "Name", Message: "a connection named \"x\" already exists"})
	assert.Equal(t, "a connection named \"x\" already exists", got.Message)
}

func TestDeserializationError(t *testing.T) {
	inner := errors.New("XML syntax error on line 1")
	err := &DeserializationError{Source: "connection definitions", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "connection definitions")
}
