package pipeline

import "errors"

var (
	// ErrDataIntegrity is returned when fetched rows cannot be turned into
	// well-formed meal or symptom records (missing columns, unparseable dates).
	ErrDataIntegrity = errors.New("data integrity error")

	// ErrInvalidSelector is returned for unknown selector, timespan or grade values.
	ErrInvalidSelector = errors.New("invalid selector")

	// ErrInvalidDateRange is returned when a date bound cannot be parsed
	// or the start lies after the end.
	ErrInvalidDateRange = errors.New("invalid date range")
)
