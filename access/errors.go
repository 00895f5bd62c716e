package access

import (
	"errors"
	"net/http"

	"github.com/hearthlabs/hearth/store"
)

// RequestError is a user-facing failure carrying an HTTP-class status.
// The transport layer maps it directly to a response; anything else
// propagating out of this package is an opaque internal error.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	return e.Message
}

// BadRequest builds a 400-class RequestError.
func BadRequest(message string) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: message}
}

// AsRequestError returns the RequestError in err's chain, if any.
func AsRequestError(err error) (*RequestError, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr, true
	}
	return nil, false
}

// isNotFound reports whether err signals a missing store record.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
