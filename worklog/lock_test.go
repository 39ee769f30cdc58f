package worklog_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RanjithKumar100/TimeWise-FireBase-CRM-sub001/worklog"
)

func TestKeyedLocker_SerializesSameDay(t *testing.T) {
	l := worklog.NewKeyedLocker()
	day := worklog.MustParseDate("2024-06-10")

	unlock, err := l.Lock(context.Background(), owner.ID, day)
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, err := l.Lock(context.Background(), owner.ID, day)
		if assert.NoError(t, err) {
			close(acquired)
			second()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held day")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second holder never acquired the day")
	}
}

func TestKeyedLocker_IndependentKeys(t *testing.T) {
	l := worklog.NewKeyedLocker()
	day := worklog.MustParseDate("2024-06-10")

	u1, err := l.Lock(context.Background(), owner.ID, day)
	require.NoError(t, err)
	defer u1()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	u2, err := l.Lock(ctx, otherUser.ID, day)
	require.NoError(t, err)
	u2()

	u3, err := l.Lock(ctx, owner.ID, day.AddDays(1))
	require.NoError(t, err)
	u3()
}

func TestKeyedLocker_ContextCancelReturnsDayBusy(t *testing.T) {
	l := worklog.NewKeyedLocker()
	day := worklog.MustParseDate("2024-06-10")

	unlock, err := l.Lock(context.Background(), owner.ID, day)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, owner.ID, day)
	assert.ErrorIs(t, err, worklog.ErrDayBusy)
	assert.True(t, worklog.IsRetryable(err))

	unlock()
	assert.Equal(t, 0, l.Held())
}

func TestKeyedLocker_ReleasesKeysAndToleratesDoubleUnlock(t *testing.T) {
	l := worklog.NewKeyedLocker()
	day := worklog.MustParseDate("2024-06-10")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), owner.ID, day)
			if assert.NoError(t, err) {
				unlock()
				unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, l.Held())
}

func TestDayKey(t *testing.T) {
	assert.Equal(t, "worklog:day:user-1:2024-06-10", worklog.DayKey(owner.ID, worklog.MustParseDate("2024-06-10")))
}
