package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for service layer
var (
	ErrProvider          = errors.New("provider error")
	ErrMailNotConfigured = errors.New("mail transport credentials not configured")
	ErrChatNotConfigured = errors.New("chat provider API key not configured")
	ErrEmptyCompletion   = errors.New("completion contained no text")
)

// ProviderError reports a failed call to an external provider. It matches
// ErrProvider with errors.Is and unwraps to the provider's own error.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// Detail returns the provider's own message, without the provider prefix
func (e *ProviderError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func wrapProvider(provider string, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Provider: provider, Err: err}
}
