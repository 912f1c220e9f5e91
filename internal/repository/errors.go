package repository

import "errors"

var (
	// ErrNotFound is returned when no record of the expected kind carries the
	// requested public identifier.
	ErrNotFound = errors.New("not found")

	// ErrHasDependents is returned when a delete is rejected because other
	// records still hold foreign keys to the target.
	ErrHasDependents = errors.New("record is still referenced by other records")

	// ErrForeignKeyViolation is returned when a write names an internal
	// identifier that does not exist in the referenced collection.
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrSelfReference is returned when a write would point a record's parent
	// relationship at the record itself.
	ErrSelfReference = errors.New("record must not reference itself")
)
