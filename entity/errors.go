package entity

import (
	"errors"
	"fmt"
)

type EntityType string

const (
	EntityVM      EntityType = "vm"
	EntityDrive   EntityType = "drive"
	EntityKernel  EntityType = "kernel"
	EntityStorage EntityType = "storage"
	EntityHost    EntityType = "host"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// NotFoundError is returned when a lookup by id finds nothing.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Entity, e.ID)
}

func NewNotFoundError(entity EntityType, id fmt.Stringer) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id.String()}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// TransitionError reports a lifecycle change the current status does not allow.
type TransitionError struct {
	From VMStatus
	To   VMStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
