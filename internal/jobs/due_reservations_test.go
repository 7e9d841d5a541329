package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argodnc/office-rental/internal/repository"
)

type fakeSource struct {
	byDay map[string][]repository.DueReservation
	err   error
}

func (f *fakeSource) ListStartingOn(_ context.Context, day time.Time) ([]repository.DueReservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byDay[day.Format("2006-01-02")], nil
}

type startingCall struct {
	recipient string
	resID     uint64
}

type fakeStartingNotifier struct {
	mu    sync.Mutex
	calls []startingCall
	fail  map[uint64]error // reservation id -> error for the visitor leg
}

func (f *fakeStartingNotifier) UserReservationStarting(_ context.Context, due repository.DueReservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.fail[due.ReservationID]; ok {
		return err
	}
	f.calls = append(f.calls, startingCall{recipient: "visitor", resID: due.ReservationID})
	return nil
}

func (f *fakeStartingNotifier) HostReservationStarting(_ context.Context, due repository.DueReservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, startingCall{recipient: "host", resID: due.ReservationID})
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestRunOnceNotifiesBothPartiesPerDueReservation(t *testing.T) {
	src := &fakeSource{byDay: map[string][]repository.DueReservation{
		"2024-05-01": {
			{ReservationID: 1, VisitorID: 10, HostID: 20},
			{ReservationID: 2, VisitorID: 11, HostID: 21},
		},
	}}
	notifier := &fakeStartingNotifier{}
	job := NewDueReservationJob(src, notifier, fixedClock{t: day(t, "2024-05-01").Add(6 * time.Hour)})

	require.NoError(t, job.RunOnce(context.Background()))
	assert.ElementsMatch(t, []startingCall{
		{recipient: "visitor", resID: 1},
		{recipient: "host", resID: 1},
		{recipient: "visitor", resID: 2},
		{recipient: "host", resID: 2},
	}, notifier.calls)
}

func TestRunOnceNoDueReservations(t *testing.T) {
	src := &fakeSource{byDay: map[string][]repository.DueReservation{}}
	notifier := &fakeStartingNotifier{}
	job := NewDueReservationJob(src, notifier, fixedClock{t: day(t, "2024-05-01")})

	require.NoError(t, job.RunOnce(context.Background()))
	assert.Empty(t, notifier.calls)
}

func TestRunOnceContinuesPastNotifierFailure(t *testing.T) {
	src := &fakeSource{byDay: map[string][]repository.DueReservation{
		"2024-05-01": {
			{ReservationID: 1, VisitorID: 10, HostID: 20},
			{ReservationID: 2, VisitorID: 11, HostID: 21},
		},
	}}
	notifier := &fakeStartingNotifier{fail: map[uint64]error{1: errors.New("broker down")}}
	job := NewDueReservationJob(src, notifier, fixedClock{t: day(t, "2024-05-01")})

	require.NoError(t, job.RunOnce(context.Background()))
	// Visitor leg of reservation 1 failed; everything else still went out.
	assert.ElementsMatch(t, []startingCall{
		{recipient: "host", resID: 1},
		{recipient: "visitor", resID: 2},
		{recipient: "host", resID: 2},
	}, notifier.calls)
}

func TestRunOncePropagatesQueryError(t *testing.T) {
	src := &fakeSource{err: errors.New("db down")}
	job := NewDueReservationJob(src, &fakeStartingNotifier{}, fixedClock{t: day(t, "2024-05-01")})

	assert.Error(t, job.RunOnce(context.Background()))
}
