package webset

import "github.com/cockroachdb/errors"

// ErrServiceUnavailable is returned when no upstream credential is configured.
var ErrServiceUnavailable = errors.New("Websets service not available")

// InternalError wraps any other failure that happened while polling.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string {
	return "Failed to poll webset status: " + e.Err.Error()
}

func (e *InternalError) Unwrap() error { return e.Err }

// classify leaves service-unavailable errors (and already classified
// internal errors) as they are and wraps everything else.
func classify(err error) error {
	if errors.Is(err, ErrServiceUnavailable) {
		return err
	}
	var ie *InternalError
	if errors.As(err, &ie) {
		return err
	}
	return &InternalError{Err: err}
}
