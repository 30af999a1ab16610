package store

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")

	// ErrTokenCollision is returned when a new user's access token is
	// already taken by another user.
	ErrTokenCollision = errors.New("access token collision")

	// ErrInvalidID is returned when an id is not a valid ObjectID.
	ErrInvalidID = errors.New("invalid id")
)
