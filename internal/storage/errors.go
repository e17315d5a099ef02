package storage

import "errors"

var (
	// ErrNotFound is returned when a name, task id, or sequence number is
	// absent from the store.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when registering a task name that is
	// already in the registry.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotInitialized is returned when the store file is missing or its
	// relations have not been created yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'tasklog init' first")
)
