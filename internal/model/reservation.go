package model

import "time"

// Reservation statuses. A freshly created reservation is ACTIVE and
// occupies its calendar days; cancellation is a one-way transition to
// CANCELED. Only ACTIVE reservations block availability.
const (
	StatusActive   = "ACTIVE"
	StatusCanceled = "CANCELED"
)

// Reservation records a visitor's booking of an office for an
// inclusive calendar date range. StartDate and EndDate carry no time
// component; both are stored as DATE columns and surface here as
// UTC-midnight timestamps. Price is computed once at creation and is
// immutable afterwards.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – visitor who made the reservation.
//  OfficeID     – office being reserved.
//  StartDate    – first occupied day (inclusive).
//  EndDate      – last occupied day (inclusive), strictly after StartDate.
//  Status       – StatusActive or StatusCanceled.
//  Price        – total price in the smallest currency unit.
//  WifiPassword – plaintext wifi secret; sealed before it reaches storage.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Reservation struct {
	ID           uint64    // reservations.id
	UserID       uint64    // reservations.user_id
	OfficeID     uint64    // reservations.office_id
	StartDate    time.Time // reservations.start_date
	EndDate      time.Time // reservations.end_date
	Status       string    // reservations.status
	Price        int64     // reservations.price
	WifiPassword string    // reservations.wifi_password (encrypted at rest)
	CreatedAt    time.Time // reservations.created_at
	UpdatedAt    time.Time // reservations.updated_at
}
