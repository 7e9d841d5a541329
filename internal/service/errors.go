package service

import "errors"

// Business-rule failures returned by the reservation service. All of
// them are expected, recoverable outcomes for the caller; handlers map
// them onto 4xx responses. Infrastructure failures (database, lock
// backend) pass through unwrapped and surface as internal errors.
var (
	// ErrInvalidDates is returned when the requested range is malformed:
	// end not after start, or start not in the future.
	ErrInvalidDates = errors.New("invalid reservation dates")

	// ErrOwnOffice is returned when a host tries to reserve their own office.
	ErrOwnOffice = errors.New("cannot make a reservation on your own office")

	// ErrOfficeNotBookable is returned when the office is pending approval,
	// rejected, or hidden.
	ErrOfficeNotBookable = errors.New("cannot make a reservation on a pending or hidden office")

	// ErrUnavailable is returned when an ACTIVE reservation already
	// overlaps the requested range.
	ErrUnavailable = errors.New("office unavailable for the requested dates")

	// ErrForbidden is returned when the acting user does not own the
	// reservation they are trying to cancel.
	ErrForbidden = errors.New("forbidden")

	// ErrCannotCancel is returned when the reservation is already canceled
	// or its start date has been reached.
	ErrCannotCancel = errors.New("cannot cancel this reservation")
)
