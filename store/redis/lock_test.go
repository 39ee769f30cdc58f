package redis_test

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/store/redis"
	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

// These tests need a live server: REDIS_ADDRESS=localhost:6379 go test ./store/redis
func newLocker(t *testing.T) *redis.Locker {
	t.Helper()
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	rdb, err := redis.Connect(ctx, addr)
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	l := redis.NewLocker(rdb, logger)
	l.RetryEvery = 10 * time.Millisecond
	l.MaxRetries = 3
	return l
}

func TestLocker_SecondHolderGetsDayBusy(t *testing.T) {
	l := newLocker(t)
	ctx := context.Background()
	owner := worklog.UserID("redis-test-" + time.Now().Format("150405.000000"))
	day := worklog.MustParseDate("2024-06-10")

	unlock, err := l.Lock(ctx, owner, day)
	require.NoError(t, err)

	_, err = l.Lock(ctx, owner, day)
	assert.ErrorIs(t, err, worklog.ErrDayBusy)

	other, err := l.Lock(ctx, owner, day.AddDays(1))
	require.NoError(t, err)
	other()

	unlock()
	again, err := l.Lock(ctx, owner, day)
	require.NoError(t, err)
	again()
}

func TestLocker_ExpiredLockIsReclaimed(t *testing.T) {
	l := newLocker(t)
	l.TTL = 50 * time.Millisecond
	ctx := context.Background()
	owner := worklog.UserID("redis-ttl-" + time.Now().Format("150405.000000"))
	day := worklog.MustParseDate("2024-06-10")

	stale, err := l.Lock(ctx, owner, day)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	fresh, err := l.Lock(ctx, owner, day)
	require.NoError(t, err)

	// Releasing the expired holder must not panic or free the new one.
	stale()
	_, err = l.Lock(ctx, owner, day)
	assert.ErrorIs(t, err, worklog.ErrDayBusy)
	fresh()
}
