package engine

import "errors"

var (
	// ErrDebtNotFound is returned when no outstanding debt matches the id.
	ErrDebtNotFound = errors.New("debt not found")

	// ErrWoodTypeNotFound is returned when a catalog entry id is unknown.
	ErrWoodTypeNotFound = errors.New("wood type not found")
)
