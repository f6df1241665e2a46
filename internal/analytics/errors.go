package analytics

import "errors"

var (
	// ErrEmptySelection is reported by a view whose filtered subset is empty.
	ErrEmptySelection = errors.New("no data for the current selection")

	// ErrDivisionUndefined is returned when a percentage is requested over a zero total.
	ErrDivisionUndefined = errors.New("percentage undefined for zero total")

	// ErrAbsentExtremum is returned when an extremum is requested over an empty aggregate.
	ErrAbsentExtremum = errors.New("extremum absent for empty aggregate")
)
