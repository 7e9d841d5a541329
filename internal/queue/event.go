// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used by the notification pipeline.
const (
	ReservationCreatedQueue  = "reservation.created"
	ReservationStartingQueue = "reservation.starting"
)

// Recipient values identify which party a notification addresses.
const (
	RecipientVisitor = "visitor"
	RecipientHost    = "host"
)

// ReservationCreatedEvent is published once per recipient when a booking
// succeeds. It carries enough information for downstream consumers to
// notify, log, or feed analytics without querying the primary database.
// The wifi password never travels through the broker.
type ReservationCreatedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	OfficeID      uint64 `json:"office_id"`
	OfficeTitle   string `json:"office_title"`
	VisitorID     uint64 `json:"visitor_id"`
	HostID        uint64 `json:"host_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Price         int64  `json:"price"`
	Recipient     string `json:"recipient"` // RecipientVisitor or RecipientHost
	Email         string `json:"email"`
	CreatedAt     string `json:"created_at"`
}

// ReservationStartingEvent is published by the due-reservation job for
// every ACTIVE reservation whose start date equals the current date, once
// per recipient.
type ReservationStartingEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	OfficeID      uint64 `json:"office_id"`
	OfficeTitle   string `json:"office_title"`
	StartDate     string `json:"start_date"`
	Recipient     string `json:"recipient"`
	UserID        uint64 `json:"user_id"`
	Email         string `json:"email"`
}
