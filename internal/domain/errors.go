package domain

import "errors"

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrFacilityNotFound = errors.New("facility not found")
	ErrBookingNotFound  = errors.New("booking not found")

	// ErrInsufficientCredit is returned by the admission commit when the
	// conditional deduction touches no row.
	ErrInsufficientCredit = errors.New("insufficient credit")

	// ErrSlotTaken is returned when the booking insert loses to a
	// concurrent insert for the same facility, date and time slot.
	ErrSlotTaken = errors.New("time slot already booked")

	// ErrStatusConflict is returned when a conditional status transition
	// matches no row because a concurrent transition won.
	ErrStatusConflict = errors.New("booking status changed concurrently")

	ErrInvalidWindow = errors.New("maintenance window start date must not be after end date")
)

// ValidationError is the outcome of a failed admission check. It is
// recoverable: the caller may correct the request and resubmit, and no
// state has been mutated.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
