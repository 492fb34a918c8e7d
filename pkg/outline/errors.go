package outline

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid outline config")

	// ErrUnknownFormat is returned for an unsupported render format.
	ErrUnknownFormat = errors.New("unknown outline format")

	// ErrInputTooLarge is returned when the input exceeds the size limit.
	ErrInputTooLarge = errors.New("input exceeds size limit")

	// ErrInvalidEncoding is returned when the input is not valid UTF-8.
	ErrInvalidEncoding = errors.New("input is not valid UTF-8")
)
