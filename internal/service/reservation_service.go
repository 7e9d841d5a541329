// Package service implements the reservation booking engine: the
// serialized overlap-check-and-insert that prevents double booking of an
// office, tiered pricing, and the reservation lifecycle.
package service

import (
	"context"
	"log"
	"time"

	"github.com/argodnc/office-rental/internal/model"
	"github.com/argodnc/office-rental/internal/pricing"
)

// OfficeStore looks up office listings.
type OfficeStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Office, error)
}

// ReservationStore persists reservations and answers availability queries.
// HasActiveOverlap must reflect every committed write, so that a check
// performed under the per-office lock sees all earlier bookings.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
	HasActiveOverlap(ctx context.Context, officeID uint64, start, end time.Time) (bool, error)
}

// UserStore resolves users for notification payloads.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Locker serializes booking attempts per office. Acquire blocks for a
// bounded wait and returns lock.ErrNotObtained on expiry; the returned
// release function must be safe to call more than once.
type Locker interface {
	Acquire(ctx context.Context, officeID uint64) (func(), error)
}

// Notifier dispatches booking notifications. Calls are fire-and-forget
// from the service's perspective: returned errors are logged, never
// propagated to the booking caller.
type Notifier interface {
	UserReservationCreated(ctx context.Context, res *model.Reservation, office *model.Office, visitor model.User) error
	HostReservationCreated(ctx context.Context, res *model.Reservation, office *model.Office, host model.User) error
}

// Sealer encrypts small secrets before they reach storage.
// *utils.SecretBox satisfies it.
type Sealer interface {
	Seal(plain string) (string, error)
}

// WifiPasswordFunc generates the opaque wifi secret for a new
// reservation. Injected so tests stay deterministic.
type WifiPasswordFunc func() (string, error)

// ReservationService coordinates lock acquisition, the availability
// check, pricing, persistence and notification dispatch for the
// reservation lifecycle.
type ReservationService struct {
	offices      OfficeStore
	reservations ReservationStore
	users        UserStore
	locks        Locker
	notifier     Notifier
	sealer       Sealer
	wifiPassword WifiPasswordFunc
	clock        Clock
}

// NewReservationService wires the booking engine. All dependencies must
// be non-nil.
func NewReservationService(
	offices OfficeStore,
	reservations ReservationStore,
	users UserStore,
	locks Locker,
	notifier Notifier,
	sealer Sealer,
	wifiPassword WifiPasswordFunc,
	clock Clock,
) *ReservationService {
	if offices == nil || reservations == nil || users == nil || locks == nil ||
		notifier == nil || sealer == nil || wifiPassword == nil || clock == nil {
		panic("nil dependency passed to NewReservationService")
	}
	return &ReservationService{
		offices:      offices,
		reservations: reservations,
		users:        users,
		locks:        locks,
		notifier:     notifier,
		sealer:       sealer,
		wifiPassword: wifiPassword,
		clock:        clock,
	}
}

// CreateInput carries a booking request. StartDate and EndDate are
// calendar dates (any time-of-day component is ignored).
type CreateInput struct {
	UserID    uint64
	OfficeID  uint64
	StartDate time.Time
	EndDate   time.Time
}

// Create books an office for the requested range. The sequence is:
// validate, acquire the per-office lock with a bounded wait, check for
// overlapping ACTIVE reservations, price the stay, insert, release, then
// notify both parties outside the lock.
//
// The returned reservation carries the plaintext wifi password — this is
// the only moment it is available; storage holds the sealed form.
//
// Errors: ErrInvalidDates / ErrOwnOffice / ErrOfficeNotBookable
// (preconditions), repository.ErrOfficeNotFound, ErrUnavailable
// (overlap), lock.ErrNotObtained (bounded wait expired). Anything else
// is an infrastructure failure.
func (s *ReservationService) Create(ctx context.Context, in CreateInput) (*model.Reservation, error) {
	start := DateOf(in.StartDate)
	end := DateOf(in.EndDate)
	today := DateOf(s.clock.Now())
	// Callers validate too; re-check here so the engine holds its own
	// invariants regardless of transport.
	if !end.After(start) || !start.After(today) {
		return nil, ErrInvalidDates
	}

	office, err := s.offices.GetByID(ctx, in.OfficeID)
	if err != nil {
		return nil, err
	}
	if office.UserID == in.UserID {
		return nil, ErrOwnOffice
	}
	if !office.Bookable() {
		return nil, ErrOfficeNotBookable
	}

	release, err := s.locks.Acquire(ctx, office.ID)
	if err != nil {
		return nil, err
	}
	// Release on every exit path; the explicit call below is a no-op the
	// second time.
	defer release()

	taken, err := s.reservations.HasActiveOverlap(ctx, office.ID, start, end)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUnavailable
	}

	days := pricing.Days(start, end)
	price := pricing.Total(days, office.PricePerDay, office.MonthlyDiscount)

	plainWifi, err := s.wifiPassword()
	if err != nil {
		return nil, err
	}
	sealedWifi, err := s.sealer.Seal(plainWifi)
	if err != nil {
		return nil, err
	}

	res := &model.Reservation{
		UserID:       in.UserID,
		OfficeID:     office.ID,
		StartDate:    start,
		EndDate:      end,
		Status:       model.StatusActive,
		Price:        price,
		WifiPassword: sealedWifi,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, err
	}
	release()

	// Notifications run outside the lock and never fail the booking.
	s.notifyCreated(ctx, res, office)

	res.WifiPassword = plainWifi
	return res, nil
}

func (s *ReservationService) notifyCreated(ctx context.Context, res *model.Reservation, office *model.Office) {
	visitor, err := s.users.GetByID(ctx, res.UserID)
	if err != nil {
		log.Printf("reservation %d: load visitor %d for notification: %v", res.ID, res.UserID, err)
	} else if err := s.notifier.UserReservationCreated(ctx, res, office, visitor); err != nil {
		log.Printf("reservation %d: notify visitor: %v", res.ID, err)
	}
	host, err := s.users.GetByID(ctx, office.UserID)
	if err != nil {
		log.Printf("reservation %d: load host %d for notification: %v", res.ID, office.UserID, err)
	} else if err := s.notifier.HostReservationCreated(ctx, res, office, host); err != nil {
		log.Printf("reservation %d: notify host: %v", res.ID, err)
	}
}

// Cancel moves a reservation from ACTIVE to CANCELED. Only the owning
// visitor may cancel, only while the reservation is still ACTIVE, and
// only before its start date — once the stay has begun (or the
// reservation is already canceled) the transition is refused with
// ErrCannotCancel. Cancellation frees capacity, so no lock is needed.
func (s *ReservationService) Cancel(ctx context.Context, reservationID, actingUserID uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.UserID != actingUserID {
		return nil, ErrForbidden
	}
	if res.Status == model.StatusCanceled {
		return nil, ErrCannotCancel
	}
	today := DateOf(s.clock.Now())
	if !DateOf(res.StartDate).After(today) {
		return nil, ErrCannotCancel
	}
	if err := s.reservations.UpdateStatus(ctx, res.ID, model.StatusCanceled); err != nil {
		return nil, err
	}
	res.Status = model.StatusCanceled
	return res, nil
}
