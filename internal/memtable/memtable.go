// Package memtable is an in-memory stand-in for the DynamoDB store,
// used by tests. It mirrors the store's contract: conditional creates
// with constraint records, unconditional upserts, partition queries.
package memtable

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hearthlabs/hearth/store"
)

const constraintRow = "CONSTRAINT"

// Store holds tables of items keyed by partition and row.
type Store struct {
	mu              sync.Mutex
	constraintTable string
	tables          map[string]map[string]map[string]map[string]types.AttributeValue
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		constraintTable: store.DefaultConfig().ConstraintTable,
		tables:          make(map[string]map[string]map[string]map[string]types.AttributeValue),
	}
}

func (s *Store) table(name string) map[string]map[string]map[string]types.AttributeValue {
	t, ok := s.tables[name]
	if !ok {
		t = make(map[string]map[string]map[string]types.AttributeValue)
		s.tables[name] = t
	}
	return t
}

func keyStrings(pk store.PK) (partition, row string) {
	if v, ok := pk["pk"].(*types.AttributeValueMemberS); ok {
		partition = v.Value
	}
	if v, ok := pk["sk"].(*types.AttributeValueMemberS); ok {
		row = v.Value
	}
	return partition, row
}

// Create inserts an entity and its constraint records atomically,
// matching the store's conditional-write semantics.
func (s *Store) Create(ctx context.Context, entity store.Entity, constraints ...store.ConstraintPut) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	item, err := store.MarshalEntity(entity)
	if err != nil {
		return err
	}
	partition, row := keyStrings(entity.Key())

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range constraints {
		if _, taken := s.table(s.constraintTable)[c.PK][constraintRow]; taken {
			return store.ErrConstraintViolated
		}
	}
	entityTable := s.table(entity.TableName())
	if _, taken := entityTable[partition][row]; taken {
		return store.ErrAlreadyExists
	}

	for _, c := range constraints {
		record := map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: c.PK},
			"sk": &types.AttributeValueMemberS{Value: constraintRow},
		}
		for k, v := range c.Attributes {
			record[k] = &types.AttributeValueMemberS{Value: v}
		}
		s.put(s.constraintTable, c.PK, constraintRow, record)
	}
	s.put(entity.TableName(), partition, row, item)
	return nil
}

// Upsert creates or overwrites an entity.
func (s *Store) Upsert(ctx context.Context, entity store.Entity) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	item, err := store.MarshalEntity(entity)
	if err != nil {
		return err
	}
	partition, row := keyStrings(entity.Key())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(entity.TableName(), partition, row, item)
	return nil
}

// Get retrieves an item by key, returning store.ErrNotFound if missing.
func (s *Store) Get(ctx context.Context, table, partition, row string) (*store.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.table(table)[partition][row]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &store.Item{Raw: raw}, nil
}

// GetConstraint retrieves a constraint record by partition key.
func (s *Store) GetConstraint(ctx context.Context, pk string) (*store.Item, error) {
	return s.Get(ctx, s.constraintTable, pk, constraintRow)
}

// QueryPartition returns all items in a partition, ordered by row key.
func (s *Store) QueryPartition(ctx context.Context, table, partition string) ([]*store.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.table(table)[partition]
	keys := make([]string, 0, len(rows))
	for row := range rows {
		keys = append(keys, row)
	}
	sort.Strings(keys)

	items := make([]*store.Item, 0, len(keys))
	for _, row := range keys {
		items = append(items, &store.Item{Raw: rows[row]})
	}
	return items, nil
}

// Delete removes an item by key. Missing items are not an error.
func (s *Store) Delete(ctx context.Context, table, partition, row string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.table(table)[partition], row)
	return nil
}

// EnsureTable is a no-op; tables materialize on first write.
func (s *Store) EnsureTable(ctx context.Context, table string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.table(table)
	return nil
}

// Count returns the number of items in a table, for test assertions.
func (s *Store) Count(table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, rows := range s.table(table) {
		n += len(rows)
	}
	return n
}

func (s *Store) put(table, partition, row string, item map[string]types.AttributeValue) {
	t := s.table(table)
	if t[partition] == nil {
		t[partition] = make(map[string]map[string]types.AttributeValue)
	}
	t[partition][row] = item
}
