package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrAnalysisNotFound is returned when a stored analysis cannot be found
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrModelAPIFailure is returned when the language-model API request fails
	ErrModelAPIFailure = errors.New("model API request failed")

	// ErrModelOutputUnparseable is returned when no structured data can be
	// recovered from the model's response text
	ErrModelOutputUnparseable = errors.New("model output could not be parsed")

	// ErrInvalidReferenceData is returned when the static nutrition tables
	// violate the non-negativity invariant at startup
	ErrInvalidReferenceData = errors.New("invalid reference nutrition data")
)
