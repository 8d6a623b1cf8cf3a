package types

import (
	"errors"
)

// conflictError carries its own message and matches ErrConflict with errors.Is.
type conflictError struct {
	msg string
}

func (e conflictError) Error() string {
	return e.msg
}

func (e conflictError) Is(target error) bool {
	return target == ErrConflict
}

var (
	ErrNotFound                  = errors.New("not found")
	ErrConflict                  = errors.New("conflict")
	ErrUnavailable         error = conflictError{"villa is not available for the selected dates"}
	ErrAlreadyConfirmed    error = conflictError{"booking already confirmed"}
	ErrBookingCancelled    error = conflictError{"booking has been cancelled"}
	ErrInvalidRange              = errors.New("check-out date must be after check-in date")
	ErrInvalidGuests             = errors.New("guest count exceeds villa capacity")
	ErrProvider                  = errors.New("payment provider unavailable")
	ErrWebhookVerification       = errors.New("webhook verification failed")
)
