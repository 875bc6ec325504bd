package services

import "errors"

var (
	// Analytics errors
	ErrUnknownSource = errors.New("unknown data source")

	// Auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Assistant errors
	ErrEmptyMessage = errors.New("message is required")

	// Export errors
	ErrExportFailed = errors.New("export failed")
)
