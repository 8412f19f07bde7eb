package model

import "errors"

// Error taxonomy shared by every planner component. Operations wrap these
// with context using %w; callers match with errors.Is.
var (
	// ErrOutOfDomain is returned when a value violates its field bound
	// (distance, width, ratio and spacing must be > 0; blend in [0,1];
	// aspect components >= 1).
	ErrOutOfDomain = errors.New("value out of domain")

	// ErrNotFound is returned for an unknown projector or collection id.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a name is already taken.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrInvalidName is returned for a blank projector or collection name.
	ErrInvalidName = errors.New("invalid name")

	// ErrIndexOutOfRange is returned when the active collection index does
	// not point into the collection list.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrEmptyCollection is returned when an operation needs at least one
	// member and the collection has none.
	ErrEmptyCollection = errors.New("empty collection")

	// ErrEditInProgress is returned when an edit is attempted on a parameter
	// set whose propagation step has not finished yet.
	ErrEditInProgress = errors.New("edit already in progress")

	// ErrUnknownField is returned for a field outside the three linked
	// projection parameters.
	ErrUnknownField = errors.New("unknown field")
)
