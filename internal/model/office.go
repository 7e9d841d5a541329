package model

import "time"

// Approval states for an office listing. New listings start out
// pending and only become reservable once approved.
const (
	ApprovalPending  uint8 = 1
	ApprovalApproved uint8 = 2
	ApprovalRejected uint8 = 3
)

// Office is a bookable space listing owned by a host user. Visitors
// can only reserve offices that are approved and not hidden.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – host who owns the listing.
//  Title           – short listing title.
//  Address         – street address shown to visitors.
//  PricePerDay     – daily rate in the smallest currency unit.
//  MonthlyDiscount – percentage discount applied to stays of 28 days
//                    or more (0 disables the discount).
//  ApprovalStatus  – one of the Approval* constants.
//  Hidden          – host has taken the listing off the market.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Office struct {
	ID              uint64    // offices.id
	UserID          uint64    // offices.user_id
	Title           string    // offices.title
	Address         string    // offices.address
	PricePerDay     int64     // offices.price_per_day
	MonthlyDiscount int64     // offices.monthly_discount
	ApprovalStatus  uint8     // offices.approval_status
	Hidden          bool      // offices.hidden
	CreatedAt       time.Time // offices.created_at
	UpdatedAt       time.Time // offices.updated_at
}

// Bookable reports whether the listing can accept new reservations.
func (o *Office) Bookable() bool {
	return o.ApprovalStatus == ApprovalApproved && !o.Hidden
}
