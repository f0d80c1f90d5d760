package validator

import "errors"

var (
	// ErrValidationFailed is returned when validation fails but no specific error is provided.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidValue rejects a value with the default custom message.
	ErrInvalidValue = errors.New("invalid value")

	// ErrOutOfRange is returned by numeric custom checks.
	ErrOutOfRange = errors.New("value out of range")

	ErrUnknownPattern = errors.New("unknown pattern kind")
	ErrInvalidPattern = errors.New("invalid pattern expression")
	ErrUnknownCustom  = errors.New("unknown custom rule")
	ErrUnknownPreset  = errors.New("unknown rule preset")
	ErrDuplicateRule  = errors.New("custom rule already registered")
)
