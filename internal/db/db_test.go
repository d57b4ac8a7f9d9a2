package db

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type pingFn func(ctx context.Context) error

func (f pingFn) Ping(ctx context.Context) error { return f(ctx) }

func TestWaitForReady_EventuallyUp(t *testing.T) {
	var calls atomic.Int32
	p := pingFn(func(context.Context) error {
		if calls.Add(1) < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	if err := WaitForReady(context.Background(), p, 2*time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestWaitForReady_Timeout(t *testing.T) {
	p := pingFn(func(context.Context) error { return errors.New("down") })

	err := WaitForReady(context.Background(), p, 250*time.Millisecond)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Op: OpFind, Err: ErrNotConnected}
	if !errors.Is(err, ErrNotConnected) {
		t.Error("errors.Is should see the wrapped sentinel")
	}
	if err.Error() != "find: db: not connected" {
		t.Errorf("Error() = %q", err.Error())
	}
}
