// Package lock serializes work on a single key, such as one user's
// attendance for one day.
package lock

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
)

var ErrLockTimeout = errors.New("timed out waiting for lock")

// Unlock releases a held lock. It is safe to call once.
type Unlock func()

type Locker interface {
	// Lock blocks until key is held or ctx is done.
	Lock(ctx context.Context, key string) (Unlock, error)
}

const defaultStripes = 256

// StripedLocker maps keys onto a fixed set of mutexes. Two keys may share a
// stripe; that only costs throughput.
type StripedLocker struct {
	stripes []chan struct{}
}

func NewStripedLocker(n int) *StripedLocker {
	if n <= 0 {
		n = defaultStripes
	}
	stripes := make([]chan struct{}, n)
	for i := range stripes {
		stripes[i] = make(chan struct{}, 1)
	}
	return &StripedLocker{stripes: stripes}
}

func (l *StripedLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	stripe := l.stripes[l.index(key)]
	select {
	case stripe <- struct{}{}:
	case <-ctx.Done():
		return nil, errors.Join(ErrLockTimeout, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-stripe })
	}, nil
}

func (l *StripedLocker) index(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(l.stripes)))
}
