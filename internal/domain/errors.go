package domain

import "errors"

var (
	// ErrNotANumber marks configuration input that does not parse as a number.
	ErrNotANumber = errors.New("value is not a number")
	// ErrOutOfRange marks a parsed configuration value rejected by the option's validator.
	ErrOutOfRange = errors.New("value out of allowed range")
	// ErrUnknownOption marks a configuration key with no registered option.
	ErrUnknownOption = errors.New("unknown configuration option")
	// ErrPayloadShape marks a response missing the expected embedded payload.
	ErrPayloadShape = errors.New("unexpected response payload shape")
)
