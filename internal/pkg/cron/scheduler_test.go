package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunOnce(t *testing.T) {
	s := NewScheduler(time.Second)

	var ran int32
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	s.AddJob("broken", time.Hour, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return errors.New("boom")
	})

	failed := s.RunOnce(context.Background())

	assert.Equal(t, 1, failed)
	assert.Equal(t, int32(2), atomic.LoadInt32(&ran))
	assert.Equal(t, []string{"ok", "broken"}, s.JobNames())
}

func TestSchedulerTimeoutBoundsJob(t *testing.T) {
	s := NewScheduler(10 * time.Millisecond)
	s.AddJob("slow", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.Equal(t, 1, s.RunOnce(context.Background()))
}

func TestSchedulerStartStop(t *testing.T) {
	s := NewScheduler(0)

	var ran int32
	s.AddJob("tick", 5*time.Millisecond, func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return atomic.LoadInt32(&ran) >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := atomic.LoadInt32(&ran)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt32(&ran))
}
