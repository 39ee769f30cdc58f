package worklog

import (
	"context"
	"sync"
)

// DayLocker serializes writers for one (owner, date) pair. The coordinator
// holds the lock from the capacity read until the write commits.
//
// Implementations:
//   - KeyedLocker: in-process, single instance deployments and tests
//   - store/redis.Locker: shared across instances via redislock
type DayLocker interface {
	Lock(ctx context.Context, ownerID UserID, date Date) (unlock func(), err error)
}

// DayKey is the lock key for an owner and date.
func DayKey(ownerID UserID, date Date) string {
	return "worklog:day:" + string(ownerID) + ":" + date.String()
}

// KeyedLocker is a map of reference-counted mutexes, one per day key.
// Entries are removed when the last holder releases.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedMutex
}

type keyedMutex struct {
	ch   chan struct{}
	refs int
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: make(map[string]*keyedMutex)}
}

// Lock blocks until the day is free or ctx is done.
func (l *KeyedLocker) Lock(ctx context.Context, ownerID UserID, date Date) (func(), error) {
	key := DayKey(ownerID, date)

	l.mu.Lock()
	km, ok := l.locks[key]
	if !ok {
		km = &keyedMutex{ch: make(chan struct{}, 1)}
		l.locks[key] = km
	}
	km.refs++
	l.mu.Unlock()

	select {
	case km.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(key, km)
		return nil, ErrDayBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-km.ch
			l.release(key, km)
		})
	}, nil
}

func (l *KeyedLocker) release(key string, km *keyedMutex) {
	l.mu.Lock()
	defer l.mu.Unlock()
	km.refs--
	if km.refs == 0 {
		delete(l.locks, key)
	}
}

// held returns the number of keys currently tracked. Test hook.
func (l *KeyedLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
