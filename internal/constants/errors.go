package constants

import "errors"

// Configuration errors.
var (
	ErrNoEndpointConfigured = errors.New("no API endpoint configured, use 'tim login --api <url>' or 'tim config set api <url>'")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrTokenCannotBeSet     = errors.New("the session token cannot be set via the config command, use 'tim login'")
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("output format must be one of table, json, yaml")
	ErrInvalidQuantity     = errors.New("quantity must be a non-negative integer")
	ErrInvalidPrice        = errors.New("price must be a decimal number")
)
