package access

import (
	"strings"

	"github.com/hearthlabs/hearth/store"
)

// Identity table names. User profiles are written by the
// authentication layer; this package only resolves users through the
// email index, which the stream handler keeps in step with profiles.
const (
	UsersTable      = "hearth_users"
	EmailIndexTable = "hearth_user_emails"

	EmailRow = "EMAIL"
)

// NormalizeEmail canonicalizes an email for index lookups. Resolution
// is case- and surrounding-whitespace-insensitive by contract.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailIndexEntry maps a normalized email to the user that owns it.
type EmailIndexEntry struct {
	Email  string `dynamodbav:"-"`
	UserID string `dynamodbav:"user_id"`
}

func (e EmailIndexEntry) TableName() string { return EmailIndexTable }
func (e EmailIndexEntry) Key() store.PK     { return store.Key(e.Email, EmailRow) }
