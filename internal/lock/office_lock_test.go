package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLockMutualExclusion(t *testing.T) {
	l := NewMemoryLock(10 * time.Millisecond)
	ctx := context.Background()

	release, err := l.Acquire(ctx, 1)
	require.NoError(t, err)

	// Second attempt on the same office must time out while held.
	_, err = l.Acquire(ctx, 1)
	assert.ErrorIs(t, err, ErrNotObtained)

	release()

	// After release the lock is free again.
	release2, err := l.Acquire(ctx, 1)
	require.NoError(t, err)
	release2()
}

func TestMemoryLockOfficesAreIndependent(t *testing.T) {
	l := NewMemoryLock(10 * time.Millisecond)
	ctx := context.Background()

	release1, err := l.Acquire(ctx, 1)
	require.NoError(t, err)
	defer release1()

	// A different office must not be serialized behind office 1.
	release2, err := l.Acquire(ctx, 2)
	require.NoError(t, err)
	release2()
}

func TestMemoryLockBlockedWaiterGetsLockAfterRelease(t *testing.T) {
	l := NewMemoryLock(2 * time.Second)
	ctx := context.Background()

	release, err := l.Acquire(ctx, 7)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		r, err := l.Acquire(ctx, 7)
		if err == nil {
			close(acquired)
			r()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("waiter acquired lock while it was still held")
	case <-time.After(50 * time.Millisecond):
	}

	release()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired the lock after release")
	}
}

func TestMemoryLockReleaseIsIdempotent(t *testing.T) {
	l := NewMemoryLock(10 * time.Millisecond)
	release, err := l.Acquire(context.Background(), 3)
	require.NoError(t, err)
	release()
	release() // second call must not free someone else's hold

	r2, err := l.Acquire(context.Background(), 3)
	require.NoError(t, err)
	defer r2()

	_, err = l.Acquire(context.Background(), 3)
	assert.ErrorIs(t, err, ErrNotObtained)
}

func TestMemoryLockContextCancellation(t *testing.T) {
	l := NewMemoryLock(5 * time.Second)
	release, err := l.Acquire(context.Background(), 4)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	_, err = l.Acquire(ctx, 4)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryLockUnderContention(t *testing.T) {
	l := NewMemoryLock(5 * time.Second)
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		max     int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), 9)
			if err != nil {
				t.Errorf("acquire: %v", err)
				return
			}
			mu.Lock()
			holders++
			if holders > max {
				max = holders
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			holders--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, max, "more than one goroutine held the lock at once")
}
