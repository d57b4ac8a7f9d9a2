package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID signals a malformed document identifier.
	ErrInvalidID = errors.New("invalid id")
	// ErrUnknownEntity signals a list request for an entity that is not registered.
	ErrUnknownEntity = errors.New("unknown entity")
)

// UnknownEntityError carries the rejected entity name.
type UnknownEntityError struct {
	Name string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownEntity.Error(), e.Name)
}

func (e *UnknownEntityError) Unwrap() error { return ErrUnknownEntity }

// NewUnknownEntity creates an unknown entity error.
func NewUnknownEntity(name string) error {
	return &UnknownEntityError{Name: name}
}
