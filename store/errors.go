package store

import "errors"

var (
	// ErrNotFound is returned when an entity doesn't exist.
	ErrNotFound = errors.New("hearth: entity not found")

	// ErrAlreadyExists is returned when attempting to create an entity with an existing key.
	ErrAlreadyExists = errors.New("hearth: entity already exists")

	// ErrConstraintViolated is returned when a uniqueness constraint record
	// written by Create is already held by another entity.
	ErrConstraintViolated = errors.New("hearth: uniqueness constraint violated")
)
