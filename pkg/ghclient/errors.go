package ghclient

import (
	"errors"
	"fmt"
)

// ErrorKind partitions API failures for middleware-level handling.
type ErrorKind int

const (
	// KindSubmissionFailed covers rejected mutations (reviews, merges).
	KindSubmissionFailed ErrorKind = iota
	// KindNotFound is a missing resource.
	KindNotFound
	// KindUnauthorized is a 401/403 from the API.
	KindUnauthorized
	// KindUnavailable is a 5xx from the API.
	KindUnavailable
	// KindRateLimited is a 429 (or secondary rate limit); RetryAfter is set.
	KindRateLimited
	// KindNetworkError is a transport-level failure.
	KindNetworkError
	// KindFileNotFound is a missing file within a repository at a commit.
	KindFileNotFound
)

// APIError is the typed error every client operation returns on failure.
type APIError struct {
	Kind    ErrorKind
	Message string
	// RetryAfterSeconds is set for KindRateLimited.
	RetryAfterSeconds int
	// Cause holds the underlying transport error, if any.
	Cause error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindSubmissionFailed:
		return fmt.Sprintf("submission failed: %s", e.Message)
	case KindNotFound:
		return fmt.Sprintf("not found: %s", e.Message)
	case KindUnauthorized:
		return fmt.Sprintf("unauthorized: %s", e.Message)
	case KindUnavailable:
		return fmt.Sprintf("service unavailable: %s", e.Message)
	case KindRateLimited:
		return fmt.Sprintf("rate limited, retry after %ds", e.RetryAfterSeconds)
	case KindFileNotFound:
		return fmt.Sprintf("file not found: %s", e.Message)
	default:
		return fmt.Sprintf("network error: %s", e.Message)
	}
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// AsAPIError extracts an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func submissionFailed(msg string, cause error) *APIError {
	return &APIError{Kind: KindSubmissionFailed, Message: msg, Cause: cause}
}

func notFound(id string) *APIError {
	return &APIError{Kind: KindNotFound, Message: id}
}

func networkError(cause error) *APIError {
	return &APIError{Kind: KindNetworkError, Message: cause.Error(), Cause: cause}
}
