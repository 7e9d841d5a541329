// Package lock provides mutual exclusion keyed by office id. Every
// booking attempt for an office must hold the office's lock across the
// availability check and insert; locks for different offices are fully
// independent. The Redis implementation is the production one — the
// server runs as multiple worker processes, so the lock has to live in a
// shared store. The in-process implementation has identical semantics
// and backs tests and single-node development.
package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotObtained is returned when the lock could not be acquired within
// the bounded wait. Callers surface this as a transient, retryable
// failure rather than a validation error.
var ErrNotObtained = errors.New("office lock not obtained")

// holdTTL bounds how long a crashed holder can block an office. It is
// far above any realistic check-and-insert span, so live holders never
// lose the lock mid-booking.
const holdTTL = 30 * time.Second

// retryInterval is the polling cadence while waiting for a busy lock.
const retryInterval = 50 * time.Millisecond

// OfficeLock acquires a Redis-backed lock per office with a bounded
// blocking wait. Acquisition is SET NX with a TTL; release runs a
// compare-and-delete script so only the holder can release, even if the
// TTL already expired and someone else took over.
type OfficeLock struct {
	client *redis.Client
	wait   time.Duration
}

// NewOfficeLock returns an OfficeLock that waits at most maxWait for a
// busy lock before giving up with ErrNotObtained.
func NewOfficeLock(client *redis.Client, maxWait time.Duration) *OfficeLock {
	return &OfficeLock{client: client, wait: maxWait}
}

// releaseScript deletes the key only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Acquire blocks until the office's lock is held, the bounded wait
// elapses (ErrNotObtained), or ctx is done. On success it returns a
// release function that must be called on every exit path; release is
// safe to call after the request context was canceled.
func (l *OfficeLock) Acquire(ctx context.Context, officeID uint64) (func(), error) {
	key := fmt.Sprintf("lock:office:%d", officeID)
	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(ctx, key, token, holdTTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				// The request context may already be canceled; the lock
				// must still be freed.
				rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(rctx, l.client, []string{key}, token).Err()
			}
			return release, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrNotObtained
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

func randomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// MemoryLock serializes booking attempts per office within a single
// process. It mirrors OfficeLock's contract: bounded wait, independent
// keys, release usable after context cancellation.
type MemoryLock struct {
	mu    sync.Mutex
	slots map[uint64]chan struct{}
	wait  time.Duration
}

// NewMemoryLock returns a MemoryLock with the given bounded wait.
func NewMemoryLock(maxWait time.Duration) *MemoryLock {
	return &MemoryLock{slots: make(map[uint64]chan struct{}), wait: maxWait}
}

func (l *MemoryLock) slot(officeID uint64) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.slots[officeID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[officeID] = ch
	}
	return ch
}

// Acquire takes the office's slot or fails with ErrNotObtained after the
// bounded wait.
func (l *MemoryLock) Acquire(ctx context.Context, officeID uint64) (func(), error) {
	ch := l.slot(officeID)
	timer := time.NewTimer(l.wait)
	defer timer.Stop()
	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-timer.C:
		return nil, ErrNotObtained
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
