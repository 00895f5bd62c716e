// Package store provides a DynamoDB data access layer for keyed entities.
package store

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// Key builds a two-part primary key from a partition and row value.
func Key(partition, row string) PK {
	return PK{
		"pk": &types.AttributeValueMemberS{Value: partition},
		"sk": &types.AttributeValueMemberS{Value: row},
	}
}

// Entity is the base interface for all storable types.
type Entity interface {
	// TableName returns the DynamoDB table name for this entity type.
	TableName() string

	// Key returns the primary key for this entity.
	Key() PK
}

// ConstraintPut describes a uniqueness record written alongside an
// entity in Create. The record is conditioned on its partition key
// being absent, so the transaction fails with ErrConstraintViolated
// when another entity already claimed the same value.
type ConstraintPut struct {
	// PK is the hash-distributed partition key for the constraint.
	PK string

	// Attributes are additional string attributes stored on the record,
	// typically enough to identify which entity holds the constraint.
	Attributes map[string]string
}

// Item represents a retrieved DynamoDB item.
type Item struct {
	// Raw is the raw DynamoDB item.
	Raw map[string]types.AttributeValue
}

// Attr returns the named string attribute, or "" when absent or not a string.
func (i *Item) Attr(name string) string {
	if v, ok := i.Raw[name].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

// Unmarshal decodes the item's attributes into out.
func (i *Item) Unmarshal(out any) error {
	return attributevalue.UnmarshalMap(i.Raw, out)
}

// MarshalEntity converts an entity to a DynamoDB item with its key merged in.
func MarshalEntity(e Entity) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return nil, err
	}
	for k, v := range e.Key() {
		item[k] = v
	}
	return item, nil
}
