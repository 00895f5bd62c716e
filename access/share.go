package access

import (
	"context"
	"log/slog"
	"strings"
)

// Sharer extends the ownership index to additional users by email.
type Sharer struct {
	index  *Index
	logger *slog.Logger
}

// NewSharer creates a sharing engine over the ownership index.
func NewSharer(index *Index, logger *slog.Logger) *Sharer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sharer{
		index:  index,
		logger: logger,
	}
}

// RecipientOutcome records what happened for a single recipient during
// a share fan-out. A zero UserID with a nil Err means the email did not
// resolve to an account and was skipped.
type RecipientOutcome struct {
	Email  string
	UserID string
	Err    error
}

// Share grants every resolvable recipient access to the entity.
//
// Validation failures surface as 400-class RequestErrors before any
// mutation. After that the fan-out is best-effort: each recipient is
// processed independently, unresolved emails are skipped, and
// per-recipient failures are logged and swallowed. Partial success
// still reports overall success; only context cancellation aborts the
// remaining recipients.
//
// Whether requestingUserID actually holds the entity is not verified.
// The requester is logged with each grant so enforcement can be added
// behind this call if that policy changes.
func (s *Sharer) Share(ctx context.Context, requestingUserID string, kind Kind, entityID string, recipientEmails []string) error {
	if !kind.Valid() {
		return BadRequest("entity kind is required")
	}
	if strings.TrimSpace(entityID) == "" {
		return BadRequest("entity id is required")
	}
	if len(recipientEmails) == 0 {
		return BadRequest("at least one recipient email is required")
	}

	_, err := s.fanOut(ctx, requestingUserID, kind, entityID, recipientEmails)
	return err
}

// fanOut processes each recipient independently and returns the
// per-recipient outcomes. The returned error is non-nil only for
// context cancellation.
func (s *Sharer) fanOut(ctx context.Context, requestingUserID string, kind Kind, entityID string, recipientEmails []string) ([]RecipientOutcome, error) {
	outcomes := make([]RecipientOutcome, 0, len(recipientEmails))

	for _, email := range recipientEmails {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		if strings.TrimSpace(email) == "" {
			continue
		}

		normalized := NormalizeEmail(email)
		outcome := RecipientOutcome{Email: normalized}

		targetUserID, err := s.index.UserIDByEmail(ctx, normalized)
		switch {
		case isNotFound(err):
			// Sharing with a non-existent account is a no-op, not a failure.
		case err != nil:
			if ctx.Err() != nil {
				return outcomes, ctx.Err()
			}
			outcome.Err = err
			s.logger.Info("failed to share with recipient",
				"requestingUser", requestingUserID,
				"kind", kind,
				"entityId", entityID,
				"error", err,
			)
		default:
			if assignErr := s.index.Assign(ctx, targetUserID, kind, entityID); assignErr != nil {
				if ctx.Err() != nil {
					return outcomes, ctx.Err()
				}
				outcome.Err = assignErr
				s.logger.Info("failed to share with recipient",
					"requestingUser", requestingUserID,
					"kind", kind,
					"entityId", entityID,
					"error", assignErr,
				)
			} else {
				outcome.UserID = targetUserID
				s.logger.Info("shared entity with recipient",
					"requestingUser", requestingUserID,
					"kind", kind,
					"entityId", entityID,
					"targetUser", targetUserID,
				)
			}
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}
