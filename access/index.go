// Package access maintains the ownership index that grants users
// access to entities, and the sharing engine that extends it.
package access

import (
	"context"
	"fmt"

	"github.com/hearthlabs/hearth/store"
)

// Tables is the subset of store operations the ownership index needs.
type Tables interface {
	Get(ctx context.Context, table, partition, row string) (*store.Item, error)
	Upsert(ctx context.Context, entity store.Entity) error
	QueryPartition(ctx context.Context, table, partition string) ([]*store.Item, error)
}

// Assignment records that a user may access an entity. The partition
// key is the user id and the row key the entity id, so listing one
// user's assignments for a kind is a single partition query, and
// re-assigning the same entity overwrites rather than duplicates.
type Assignment struct {
	UserID   string `dynamodbav:"user_id"`
	EntityID string `dynamodbav:"entity_id"`
	Kind     Kind   `dynamodbav:"kind"`
}

func (a Assignment) TableName() string { return a.Kind.AssignmentTable() }
func (a Assignment) Key() store.PK     { return store.Key(a.UserID, a.EntityID) }

// Index is the ownership index over assignment tables and the email index.
type Index struct {
	tables Tables
}

// NewIndex creates an ownership index backed by the given tables.
func NewIndex(tables Tables) *Index {
	return &Index{tables: tables}
}

// Assign grants userID access to an entity. Assign is idempotent:
// repeating it leaves exactly one assignment for the triple.
func (x *Index) Assign(ctx context.Context, userID string, kind Kind, entityID string) error {
	if !kind.Valid() {
		return fmt.Errorf("hearth: unknown entity kind %q", kind)
	}
	return x.tables.Upsert(ctx, Assignment{
		UserID:   userID,
		EntityID: entityID,
		Kind:     kind,
	})
}

// ListOwned returns the ids of all entities of the given kind that the
// user is assigned to, in arbitrary order.
func (x *Index) ListOwned(ctx context.Context, userID string, kind Kind) ([]string, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("hearth: unknown entity kind %q", kind)
	}

	items, err := x.tables.QueryPartition(ctx, kind.AssignmentTable(), userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.Attr("sk"))
	}
	return ids, nil
}

// UserIDByEmail resolves a user by email through the secondary index.
// The email is normalized first, so lookups are case-insensitive.
// Returns store.ErrNotFound when no account holds the address.
func (x *Index) UserIDByEmail(ctx context.Context, email string) (string, error) {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return "", store.ErrNotFound
	}

	item, err := x.tables.Get(ctx, EmailIndexTable, normalized, EmailRow)
	if err != nil {
		return "", err
	}

	userID := item.Attr("user_id")
	if userID == "" {
		return "", store.ErrNotFound
	}
	return userID, nil
}
