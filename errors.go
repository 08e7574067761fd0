package parsekit

import "errors"

// Common errors used throughout the parsekit package
var (
	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
	// ErrConfigFileNotFound indicates an explicitly requested configuration file could not be located.
	ErrConfigFileNotFound = errors.New("configuration file not found")
)
