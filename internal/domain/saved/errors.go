package saved

import "errors"

var (
	// ErrInvalidInput indicates an activity without a name was offered for saving.
	ErrInvalidInput = errors.New("invalid saved activity")
)
