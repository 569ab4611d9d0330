package ronin

import (
	"errors"
	"fmt"
)

// ErrUnavailable wraps transport failures: the request never completed,
// so nothing can be assumed about remote state.
var ErrUnavailable = errors.New("ronin service unavailable")

// StatusError is a completed request the service rejected. For
// lifecycle transitions this is the normal way to discover that another
// actor got there first; callers treat it as retryable after a refresh.
type StatusError struct {
	Op     string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: ronin service returned status %d", e.Op, e.Status)
}

// Rejected reports whether err is a non-success response from the
// service, as opposed to a transport failure.
func Rejected(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}
