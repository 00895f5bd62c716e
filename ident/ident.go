// Package ident allocates globally unique entity identifiers.
package ident

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// maxAttempts bounds collision probing. A 128-bit random identifier
// collides with vanishing probability, so more than one iteration
// almost certainly means the existence probe is broken; failing is
// better than looping forever.
const maxAttempts = 16

// ErrExhausted is returned when no unused identifier was found within
// the attempt bound. This indicates a fatal internal condition, not a
// retryable one.
var ErrExhausted = errors.New("hearth: identifier allocation exhausted")

// ExistsFunc reports whether a candidate identifier is already in use.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// Allocate draws random 128-bit identifiers in canonical UUID string
// form until exists reports one as unused. Probe errors propagate
// unchanged; a canceled context stops probing immediately.
func Allocate(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		id := uuid.NewString()
		taken, err := exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrExhausted
}
