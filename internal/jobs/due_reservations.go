// Package jobs holds scheduled background work. The only job today is
// the due-reservation sweep: every ACTIVE reservation whose start date
// equals the current date triggers a "starting today" notification to
// both the visitor and the host.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/argodnc/office-rental/internal/repository"
	"github.com/argodnc/office-rental/internal/service"
)

// ReservationSource answers the job's single query. The reservation
// repository satisfies it.
type ReservationSource interface {
	ListStartingOn(ctx context.Context, day time.Time) ([]repository.DueReservation, error)
}

// StartingNotifier dispatches the "reservation starting" events.
// Failures are logged per recipient and never abort the sweep.
type StartingNotifier interface {
	UserReservationStarting(ctx context.Context, due repository.DueReservation) error
	HostReservationStarting(ctx context.Context, due repository.DueReservation) error
}

// DueReservationJob queries reservations starting "today" (per the
// injected clock) and notifies both parties of each.
type DueReservationJob struct {
	reservations ReservationSource
	notifier     StartingNotifier
	clock        service.Clock
}

// NewDueReservationJob wires the job.
func NewDueReservationJob(reservations ReservationSource, notifier StartingNotifier, clock service.Clock) *DueReservationJob {
	return &DueReservationJob{reservations: reservations, notifier: notifier, clock: clock}
}

// RunOnce performs a single sweep. Only the query can fail the run;
// notification errors are logged and the remaining reservations are
// still processed.
func (j *DueReservationJob) RunOnce(ctx context.Context) error {
	today := service.DateOf(j.clock.Now())
	due, err := j.reservations.ListStartingOn(ctx, today)
	if err != nil {
		return err
	}
	for _, d := range due {
		if err := j.notifier.UserReservationStarting(ctx, d); err != nil {
			log.Printf("due-reservations: notify visitor %d for reservation %d: %v", d.VisitorID, d.ReservationID, err)
		}
		if err := j.notifier.HostReservationStarting(ctx, d); err != nil {
			log.Printf("due-reservations: notify host %d for reservation %d: %v", d.HostID, d.ReservationID, err)
		}
	}
	if len(due) > 0 {
		log.Printf("due-reservations: processed %d reservation(s) starting %s", len(due), today.Format("2006-01-02"))
	}
	return nil
}

// Start runs the sweep immediately and then on every tick until ctx is
// done. Production passes 24h; the cadence is injected so tests can
// shrink it.
func (j *DueReservationJob) Start(ctx context.Context, interval time.Duration) {
	if err := j.RunOnce(ctx); err != nil {
		log.Printf("due-reservations: sweep failed: %v", err)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.RunOnce(ctx); err != nil {
				log.Printf("due-reservations: sweep failed: %v", err)
			}
		}
	}
}
