package xerrors

import (
	"errors"
	"fmt"
	"time"
)

// Common reusable application errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrRateLimited    = errors.New("too many requests")
	ErrSessionExpired = errors.New("session expired or invalid")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindRateLimited
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindRateLimited:
		return "rate_limited"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified application error. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Details []FieldError
	Err     error

	// RetryAfter is set on rate-limited errors.
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a 400-class error with optional field details.
func Validation(message string, details ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: ErrNotFound}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message, Err: ErrUnauthorized}
}

func RateLimited(message string, retryAfter time.Duration) *Error {
	return &Error{Kind: KindRateLimited, Message: message, Err: ErrRateLimited, RetryAfter: retryAfter}
}

func Unavailable(message string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}

// Internal hides err behind a generic message.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal server error", Err: err}
}

// KindOf returns the classification of err. Unclassified errors are internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrSessionExpired):
		return KindUnauthorized
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	}
	return KindInternal
}

// As extracts the classified error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// NotFoundAs turns a bare ErrNotFound from a repository into a NotFound
// error carrying message. Other errors pass through unchanged.
func NotFoundAs(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); !ok && errors.Is(err, ErrNotFound) {
		return NotFound(message)
	}
	return err
}
