// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// reservation service and handlers to distinguish between different
// failure scenarios without inspecting SQL driver errors.
package repository

import "errors"

// ErrOfficeNotFound is returned when the referenced office does not exist.
var ErrOfficeNotFound = errors.New("office not found")

// ErrReservationNotFound is returned when the referenced reservation does
// not exist.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")
