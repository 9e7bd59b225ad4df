package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func TestLocker_ExclusivePerHotel(t *testing.T) {
	l := NewLocker()
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "h1")
	require.NoError(t, err)

	other, err := l.Lock(ctx, "h2")
	require.NoError(t, err, "different hotels do not contend")
	other()

	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(short, "h1")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	unlock()
	again, err := l.Lock(ctx, "h1")
	require.NoError(t, err)
	again()
}

func TestLocker_ForgetsIdleHotels(t *testing.T) {
	l := NewLocker()
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		unlock, err := l.Lock(ctx, fmt.Sprintf("h%d", i))
		require.NoError(t, err)
		unlock()
		unlock()
	}
	assert.Zero(t, l.size())

	held, err := l.Lock(ctx, "busy")
	require.NoError(t, err)
	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	_, err = l.Lock(short, "busy")
	require.Error(t, err)
	assert.Equal(t, 1, l.size(), "held lock survives a timed-out waiter")

	done := make(chan struct{})
	go func() {
		defer close(done)
		next, err := l.Lock(ctx, "busy")
		if assert.NoError(t, err) {
			next()
		}
	}()
	held()
	<-done
	assert.Zero(t, l.size())
}
