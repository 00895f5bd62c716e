package store

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// constraintRow is the row key shared by all uniqueness constraint records.
const constraintRow = "CONSTRAINT"

// Store provides DynamoDB operations on keyed entities.
type Store struct {
	client *dynamodb.Client
	config Config
}

// New creates a new Store instance.
func New(client *dynamodb.Client, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// ConstraintTable returns the name of the uniqueness constraints table.
func (s *Store) ConstraintTable() string {
	return s.config.ConstraintTable
}

// Create inserts a new entity, failing with ErrAlreadyExists when the key
// is taken. Constraint records are written in the same transaction,
// each conditioned on being absent, so uniqueness holds even when two
// writers race past their existence pre-checks.
func (s *Store) Create(ctx context.Context, entity Entity, constraints ...ConstraintPut) error {
	items := []types.TransactWriteItem{}

	for _, c := range constraints {
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.config.ConstraintTable),
				Item:                constraintItem(c),
				ConditionExpression: aws.String("attribute_not_exists(pk)"),
			},
		})
	}

	item, err := MarshalEntity(entity)
	if err != nil {
		return err
	}

	entityIndex := len(items)
	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(entity.TableName()),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(pk)"),
		},
	})

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})

	return mapCreateError(err, entityIndex)
}

// Upsert creates or overwrites an entity unconditionally. Repeating an
// Upsert with identical arguments is a no-op, which is what makes
// assignment writes idempotent.
func (s *Store) Upsert(ctx context.Context, entity Entity) error {
	item, err := MarshalEntity(entity)
	if err != nil {
		return err
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(entity.TableName()),
		Item:      item,
	})
	return err
}

// Get retrieves an entity by key, returning ErrNotFound if missing.
func (s *Store) Get(ctx context.Context, table, partition, row string) (*Item, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       Key(partition, row),
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}
	return &Item{Raw: result.Item}, nil
}

// GetConstraint retrieves a uniqueness constraint record by its
// partition key, returning ErrNotFound if no entity holds it.
func (s *Store) GetConstraint(ctx context.Context, pk string) (*Item, error) {
	return s.Get(ctx, s.config.ConstraintTable, pk, constraintRow)
}

// QueryPartition returns all items in a table partition.
func (s *Store) QueryPartition(ctx context.Context, table, partition string) ([]*Item, error) {
	var items []*Item
	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String("pk = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: partition},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			items = append(items, &Item{Raw: raw})
		}
	}
	return items, nil
}

// Delete removes an item by key. Missing items are not an error.
func (s *Store) Delete(ctx context.Context, table, partition, row string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       Key(partition, row),
	})
	return err
}

// EnsureTable provisions a table with the standard pk/sk key schema,
// waiting until it is active. Already-existing tables are not an error.
func (s *Store) EnsureTable(ctx context.Context, table string) error {
	_, err := s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		return err
	}

	waiter := dynamodb.NewTableExistsWaiter(s.client)
	return waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(table),
	}, 2*time.Minute)
}

// constraintItem builds the DynamoDB item for a constraint record.
func constraintItem(c ConstraintPut) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: c.PK},
		"sk": &types.AttributeValueMemberS{Value: constraintRow},
	}
	for k, v := range c.Attributes {
		item[k] = &types.AttributeValueMemberS{Value: v}
	}
	return item
}

// mapCreateError maps DynamoDB transaction errors for Create operations.
// entityIndex is the index of the entity put item; any other failed
// condition belongs to a constraint record.
func mapCreateError(err error, entityIndex int) error {
	if err == nil {
		return nil
	}

	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for i, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				if i == entityIndex {
					return ErrAlreadyExists
				}
				return ErrConstraintViolated
			}
		}
	}

	return err
}
