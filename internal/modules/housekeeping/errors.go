package housekeeping

import "errors"

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrUnknownRoom   = errors.New("room not in catalog")
	ErrInvalidStatus = errors.New("invalid room status")
)
