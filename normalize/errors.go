package normalize

import "errors"

var (
	// ErrDetectorRequired is returned when a language detector is not provided.
	ErrDetectorRequired = errors.New("language detector required")
)
