package services

import "errors"

// Category errors. Specific failures wrap one of these so handlers can map
// them to a response status with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrSchema          = errors.New("schema mismatch")
	ErrStorage         = errors.New("storage failed")
	ErrImportIntegrity = errors.New("import integrity check failed")
)
