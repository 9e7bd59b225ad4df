package memory

import (
	"context"
	"sync"
)

// Locker serialises bookings per hotel inside one process. Multi-instance
// deployments use the Redis locker instead.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*hotelLock
}

// hotelLock is dropped from the map once no caller holds or waits on it.
type hotelLock struct {
	ch   chan struct{}
	refs int
}

func NewLocker() *Locker { return &Locker{locks: map[string]*hotelLock{}} }

func (l *Locker) Lock(ctx context.Context, hotelID string) (func(), error) {
	l.mu.Lock()
	hl, ok := l.locks[hotelID]
	if !ok {
		hl = &hotelLock{ch: make(chan struct{}, 1)}
		l.locks[hotelID] = hl
	}
	hl.refs++
	l.mu.Unlock()

	select {
	case hl.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-hl.ch
				l.release(hotelID, hl)
			})
		}, nil
	case <-ctx.Done():
		l.release(hotelID, hl)
		return nil, ctx.Err()
	}
}

func (l *Locker) release(hotelID string, hl *hotelLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	hl.refs--
	if hl.refs == 0 {
		delete(l.locks, hotelID)
	}
}
