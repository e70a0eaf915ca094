package jobs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestQueueRejectsBeforeStart(t *testing.T) {
	q := NewQueue("test", func(context.Context, Job) error { return nil }, QueueConfig{})

	ok, err := q.Enqueue(Job{Key: "a"})
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestQueueCoalescesPendingKeys(t *testing.T) {
	started := make(chan struct{})
	unblock := make(chan struct{})
	var runs atomic.Int32
	q := NewQueue("test", func(_ context.Context, job Job) error {
		if job.Key == "block" {
			close(started)
			<-unblock
			return nil
		}
		runs.Add(1)
		return nil
	}, QueueConfig{Workers: 1})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(Job{Key: "block"})
	require.NoError(t, err)
	<-started

	first, err := q.Enqueue(Job{Key: "dashboard"})
	require.NoError(t, err)
	second, err := q.Enqueue(Job{Key: "dashboard"})
	require.NoError(t, err)
	assert.True(t, first)
	assert.False(t, second)
	assert.Equal(t, 1, q.Pending())

	close(unblock)
	assert.Eventually(t, func() bool { return runs.Load() == 1 && q.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var attempts atomic.Int32
	q := NewQueue("test", func(context.Context, Job) error {
		if attempts.Add(1) < 3 {
			return errors.New("redis unavailable")
		}
		return nil
	}, QueueConfig{MaxRetries: 3, RetryDelay: 5 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(Job{Key: "dashboard"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return attempts.Load() == 3 }, time.Second, 5*time.Millisecond)
}

func TestQueueGivesUpAfterMaxRetries(t *testing.T) {
	var attempts atomic.Int32
	q := NewQueue("test", func(context.Context, Job) error {
		attempts.Add(1)
		return errors.New("boom")
	}, QueueConfig{MaxRetries: 1, RetryDelay: 5 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	_, err := q.Enqueue(Job{Key: "dashboard"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return attempts.Load() == 2 }, time.Second, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestQueueStopWaitsForPendingRetry(t *testing.T) {
	var logs bytes.Buffer
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.Lock(zapcore.AddSync(&logs)), zap.DebugLevel)

	failed := make(chan struct{})
	var attempts atomic.Int32
	q := NewQueue("test", func(context.Context, Job) error {
		if attempts.Add(1) == 1 {
			close(failed)
		}
		return errors.New("redis unavailable")
	}, QueueConfig{MaxRetries: 3, RetryDelay: time.Hour, Logger: zap.New(core)})
	q.Start(context.Background())

	_, err := q.Enqueue(Job{Key: "dashboard"})
	require.NoError(t, err)
	<-failed

	q.Stop()

	out := logs.String()
	dropped := strings.Index(out, "retry dropped")
	require.GreaterOrEqual(t, dropped, 0, out)
	assert.Less(t, dropped, strings.Index(out, "queue stopped"))
	assert.Equal(t, int32(1), attempts.Load())
}
