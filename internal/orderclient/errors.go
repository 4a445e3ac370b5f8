package orderclient

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError is any failure talking to the order service. Status is zero
// when no response arrived.
type NetworkError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s: order service unreachable: %v", e.Op, e.Err)
		}
		return fmt.Sprintf("%s: order service unreachable", e.Op)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NotFound reports whether the service answered 404.
func (e *NetworkError) NotFound() bool { return e.Status == http.StatusNotFound }

// AsNetworkError unwraps err into a *NetworkError.
func AsNetworkError(err error) (*NetworkError, bool) {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne, true
	}
	return nil, false
}
