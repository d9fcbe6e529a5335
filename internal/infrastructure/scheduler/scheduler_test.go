package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeLock struct {
	ok       bool
	err      error
	released int32
}

func (l *fakeLock) Acquire(context.Context, string, time.Duration) (func(), bool, error) {
	if l.err != nil || !l.ok {
		return nil, l.ok, l.err
	}
	return func() { atomic.AddInt32(&l.released, 1) }, true, nil
}

func TestScheduler_RunNow(t *testing.T) {
	t.Run("runs under the lock and releases it", func(t *testing.T) {
		lock := &fakeLock{ok: true}
		s := New(lock, time.Minute, zap.NewNop())
		var runs int32
		ran := s.RunNow(context.Background(), Job{Name: "expire-budgets", Run: func(context.Context) error {
			atomic.AddInt32(&runs, 1)
			return errors.New("one order failed")
		}})
		if !ran || runs != 1 || lock.released != 1 {
			t.Fatalf("unexpected state ran=%v runs=%d released=%d", ran, runs, lock.released)
		}
	})

	t.Run("skips when the lock is held", func(t *testing.T) {
		s := New(&fakeLock{ok: false}, time.Minute, zap.NewNop())
		ran := s.RunNow(context.Background(), Job{Name: "stock-alerts", Run: func(context.Context) error {
			t.Fatalf("job must not run")
			return nil
		}})
		if ran {
			t.Fatalf("expected skip")
		}
	})

	t.Run("skips when the lock errors", func(t *testing.T) {
		s := New(&fakeLock{err: errors.New("redis down")}, time.Minute, zap.NewNop())
		if s.RunNow(context.Background(), Job{Name: "stock-alerts", Run: func(context.Context) error { return nil }}) {
			t.Fatalf("expected skip")
		}
	})
}

func TestScheduler_Start(t *testing.T) {
	var runs int32
	done := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New(&fakeLock{ok: true}, time.Minute, zap.NewNop(),
		Job{Name: "tick", Interval: 5 * time.Millisecond, Run: func(context.Context) error {
			if atomic.AddInt32(&runs, 1) == 3 {
				close(done)
			}
			return nil
		}},
		Job{Name: "disabled", Interval: 0, Run: func(context.Context) error {
			t.Fatalf("disabled job ran")
			return nil
		}},
	)
	s.Start(ctx)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("job did not tick")
	}
	cancel()
	s.Wait()
}
