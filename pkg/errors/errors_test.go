package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidProblem, "unknown problem: %s", "cube")

	if err.Code != ErrCodeInvalidProblem {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidProblem)
	}

	if err.Message != "unknown problem: cube" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown problem: cube")
	}

	expected := "INVALID_PROBLEM: unknown problem: cube"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("newton iteration diverged")
	err := Wrap(ErrCodeProjectionFailed, cause, "anchoring start state")

	if err.Code != ErrCodeProjectionFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeProjectionFailed)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInternal,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeSpaceSetup, New(ErrCodeProjectionFailed, "inner"), "outer"),
			code:     ErrCodeSpaceSetup,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidPlanner, "x")); got != ErrCodeInvalidPlanner {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeInvalidPlanner)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidTimeLimit, "time limit must be positive, got -1")
	if got := UserMessage(err); got != "time limit must be positive, got -1" {
		t.Errorf("UserMessage = %q", got)
	}
	plain := errors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
