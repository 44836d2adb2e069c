package services

import "errors"

// Error kinds surfaced by the services. Handlers map them to HTTP statuses.
var (
	ErrScanFailure = errors.New("audio scan failed")
	ErrNotFound    = errors.New("file not found")
	ErrInvalidPath = errors.New("invalid file path")
)
