// Package store provides a DynamoDB data access layer for keyed entities.
//
// Hearth models every table with the same two-part primary key: a
// string partition key "pk" and a string row key "sk". Entities
// implement the [Entity] interface and are marshalled with
// attributevalue, so type-specific attributes live alongside the key.
//
// # Key Features
//
//   - Insert-if-absent creation with transactional uniqueness records
//   - Idempotent upserts for access assignments
//   - Single-partition queries with automatic pagination
//   - Lazy, idempotent table provisioning
//
// # Entity Interface
//
// All entities must implement the [Entity] interface:
//
//	type Entity interface {
//	    TableName() string
//	    Key() PK
//	}
//
// # Uniqueness Constraints
//
// [Store.Create] accepts optional [ConstraintPut] records that are
// written in the same transaction as the entity, each conditioned on
// its partition key being absent. Registration uses this to enforce
// per-user device fingerprint uniqueness without a read-then-write
// race: the first writer wins, the second gets [ErrConstraintViolated].
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNotFound] - entity doesn't exist
//   - [ErrAlreadyExists] - entity with the same key already exists
//   - [ErrConstraintViolated] - uniqueness constraint held by another entity
package store
