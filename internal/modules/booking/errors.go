package booking

import "errors"

var (
	ErrValidation            = errors.New("validation error")
	ErrInvalidDates          = errors.New("check-out must be after check-in")
	ErrPaymentStatusRequired = errors.New("payment status required for direct bookings")
	ErrNotFound              = errors.New("booking not found")
	ErrConfirmTimeout        = errors.New("write was not confirmed in time")
)

// ConflictError carries the full detector result so the UI can explain the
// rejection (conflicting guest, date range).
type ConflictError struct {
	Result ConflictResult
}

func (e *ConflictError) Error() string {
	if e.Result.Reason != "" {
		return e.Result.Reason
	}
	return "booking conflict"
}
