// Package embedding wraps the external embedding provider behind a cached,
// batch-aware service. It is the engine's only network boundary for
// semantic features.
package embedding

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies a provider failure so callers can pick a fallback
// policy (retry, degrade to rule-only scoring, or surface to the user).
type ErrorKind string

const (
	KindAuth      ErrorKind = "auth"
	KindRateLimit ErrorKind = "rate_limit"
	KindNetwork   ErrorKind = "network"
	KindResponse  ErrorKind = "response"
)

// ProviderError wraps any failure from the embedding provider. The engine
// never substitutes a zero vector for a failed call; the caller decides.
type ProviderError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding provider error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding provider error (%s): %s", e.Kind, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// wrapProviderError classifies err by HTTP status when the provider exposes
// one, defaulting to a network failure.
func wrapProviderError(message string, err error) *ProviderError {
	kind := KindNetwork
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			kind = KindAuth
		case 429:
			kind = KindRateLimit
		}
	}
	return &ProviderError{Kind: kind, Message: message, Cause: err}
}
