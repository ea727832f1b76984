package datemath

import "errors"

var (
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrUnknownUnit     = errors.New("unknown duration unit")
	ErrDegenerateRange = errors.New("warranty window has zero length")
	ErrInvalidDate     = errors.New("invalid date")
)
