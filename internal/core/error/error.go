package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "redis key not found"
	// UnknownToolMessage describes a tool call naming an unregistered tool.
	UnknownToolMessage = "unknown tool requested"
	// LearningErrorMessage describes a failed best-effort learning write.
	LearningErrorMessage = "learning write failed"
)

// Kind classifies faults for routing decisions. Only KindUnknownTool may end a
// conversational turn with an error; every other kind degrades to a
// descriptive text result somewhere up the stack.
type Kind int

const (
	KindInternal Kind = iota
	KindRedis
	KindConfigUnavailable
	KindProviderTimeout
	KindProviderError
	KindUnknownTool
	KindLearning
)

// Error wraps an underlying error with a kind, an HTTP status and safe message.
type Error struct {
	Err     error
	Kind    Kind
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the provided information.
func New(err error, status int, message string) *Error {
	return &Error{
		Err:     err,
		Kind:    KindInternal,
		Status:  status,
		Message: message,
	}
}

// NewKind creates a new Error tagged with an explicit kind.
func NewKind(err error, kind Kind, status int, message string) *Error {
	return &Error{
		Err:     err,
		Kind:    kind,
		Status:  status,
		Message: message,
	}
}

// UnknownTool builds the turn-fatal error for an unregistered tool name.
func UnknownTool(name string) *Error {
	return &Error{
		Err:     fmt.Errorf("tool %q is not registered", name),
		Kind:    KindUnknownTool,
		Status:  http.StatusBadRequest,
		Message: UnknownToolMessage,
	}
}

// IsKind reports whether err carries the given kind in its chain.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Is reports whether the target matches the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to Error or the wrapped error in a chain.
func (e *Error) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**Error); ok {
		*t = e
		return true
	}
	return false
}
