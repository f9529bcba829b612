package station

import (
	"errors"
	"fmt"
)

// FailureKind separates the two ways a directory fetch can fail.
type FailureKind string

const (
	// FailureTransport covers network errors and non-2xx responses.
	FailureTransport FailureKind = "transport"
	// FailureDecode covers bodies that are not a POI array.
	FailureDecode FailureKind = "decode"
)

// FetchError represents a failed Open Charge Map lookup
type FetchError struct {
	Kind       FailureKind
	Message    string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("open charge map %s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("open charge map %s error: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func newTransportError(message string, statusCode int, err error) *FetchError {
	return &FetchError{
		Kind:       FailureTransport,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

func newDecodeError(message string, err error) *FetchError {
	return &FetchError{
		Kind:    FailureDecode,
		Message: message,
		Err:     err,
	}
}

// KindOf reports the failure kind of err, or "" when err is not a FetchError.
func KindOf(err error) FailureKind {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind
	}
	return ""
}
