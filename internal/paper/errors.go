package paper

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is matched by every InvalidConfigurationError.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidRequest is matched by every InvalidRequestError.
	ErrInvalidRequest = errors.New("invalid request")
)

// InvalidConfigurationError reports a request that cannot be allocated against
// the curriculum, such as topic preferences that match no unit.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// InvalidRequestError reports a malformed blueprint request.
type InvalidRequestError struct {
	Field  string
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Reason)
}

func (e *InvalidRequestError) Is(target error) bool {
	return target == ErrInvalidRequest
}
