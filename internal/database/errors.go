package database

import "errors"

var (
	// ErrRunNotFound is returned when no run matches the requested id.
	ErrRunNotFound = errors.New("run not found")

	// ErrAmbiguousRunID is returned when an id prefix matches several runs.
	ErrAmbiguousRunID = errors.New("run id prefix matches more than one run")
)
