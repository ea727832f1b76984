package warranty

import "errors"

var (
	ErrItemNotFound       = errors.New("item not found")
	ErrEmptyName          = errors.New("item name must not be empty")
	ErrDateBoughtInFuture = errors.New("purchase date is in the future")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidSort        = errors.New("invalid sort order")
	ErrCalendarDisabled   = errors.New("calendar integration is not configured")
	ErrReminderInPast     = errors.New("reminder date is in the past")
)
