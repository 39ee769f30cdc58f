// Package redis provides a worklog.DayLocker shared between server
// instances, backed by bsm/redislock.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

const (
	DefaultTTL        = 5 * time.Second
	DefaultRetryEvery = 50 * time.Millisecond
	DefaultMaxRetries = 20
)

// Locker implements worklog.DayLocker with one redis key per (owner, date).
// The TTL bounds how long a crashed holder can block the day.
type Locker struct {
	client     *redislock.Client
	log        logrus.FieldLogger
	TTL        time.Duration
	RetryEvery time.Duration
	MaxRetries int
}

var _ worklog.DayLocker = (*Locker)(nil)

// NewLocker wraps an existing redis client.
func NewLocker(rdb goredis.UniversalClient, log logrus.FieldLogger) *Locker {
	return &Locker{
		client:     redislock.New(rdb),
		log:        log,
		TTL:        DefaultTTL,
		RetryEvery: DefaultRetryEvery,
		MaxRetries: DefaultMaxRetries,
	}
}

// Connect dials addr and verifies it with PING.
func Connect(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		DB:       0,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Lock obtains the day key, retrying linearly. redislock.ErrNotObtained is
// reported as worklog.ErrDayBusy.
func (l *Locker) Lock(ctx context.Context, ownerID worklog.UserID, date worklog.Date) (func(), error) {
	key := worklog.DayKey(ownerID, date)

	lock, err := l.client.Obtain(ctx, key, l.TTL, l.options())
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, worklog.ErrDayBusy
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}

	return func() {
		// Release with a fresh context: the request may already be done.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := lock.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.WithFields(logrus.Fields{
				"module": "redis",
				"key":    key,
			}).WithError(err).Warn("failed to release day lock")
		}
	}, nil
}

func (l *Locker) options() *redislock.Options {
	return &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.RetryEvery), l.MaxRetries),
	}
}
