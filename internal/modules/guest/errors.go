package guest

import "errors"

var (
	ErrGuestNotFound = errors.New("guest not found")
	ErrNoIdentity    = errors.New("booking carries no guest name or contact field")
)
