package stock

import "errors"

var (
	// ErrNotFound indicates the record is absent or empty. It is the normal
	// "not yet initialized" signal.
	ErrNotFound = errors.New("record not found")
	// ErrBackend indicates the underlying storage call failed.
	ErrBackend = errors.New("storage backend failure")
	// ErrPartialFailure indicates a multi-record write stopped after
	// persisting some records.
	ErrPartialFailure = errors.New("partial write")
	// ErrInvalidInput indicates caller supplied data failed validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownRecord indicates a record name outside categories, stock and profile.
	ErrUnknownRecord = errors.New("unknown record")
)
