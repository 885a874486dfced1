package ingestion

import "errors"

var (
	// ErrRepositoryRequired is returned when a conversation repository is not provided.
	ErrRepositoryRequired = errors.New("conversation repository required")

	// ErrRegistryRequired is returned when an adapter registry is not provided.
	ErrRegistryRequired = errors.New("adapter registry required")

	// ErrNormalizerRequired is returned when a normalizer is not provided.
	ErrNormalizerRequired = errors.New("normalizer required")

	// ErrNoAdapter is returned when no adapter is registered for a dataset.
	ErrNoAdapter = errors.New("no adapter registered for dataset")
)
