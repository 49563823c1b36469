package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/realDragonium/picocraft/worker"
)

func TestBufferPool(t *testing.T) {
	pool := worker.NewBufferPool(2, 64)
	ctx := context.Background()

	s1, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s1 == s2 || s1.Index() == s2.Index() {
		t.Fatal("the same slot was handed out twice")
	}
	if pool.InUse() != 2 || pool.Size() != 2 {
		t.Errorf("got %d/%d slots in use", pool.InUse(), pool.Size())
	}
	if s1.Reader.Size() != 64 {
		t.Errorf("got buffer size %d", s1.Reader.Size())
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	if _, err := pool.Acquire(timeoutCtx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected acquire to wait for a free slot but got: %v", err)
	}

	acquired := make(chan *worker.Slot, 1)
	go func() {
		slot, _ := pool.Acquire(ctx)
		acquired <- slot
	}()

	select {
	case <-acquired:
		t.Fatal("acquired a slot while every slot is in use")
	case <-time.After(20 * time.Millisecond):
	}

	pool.Release(s1)
	select {
	case slot := <-acquired:
		if slot != s1 {
			t.Errorf("expected the released slot")
		}
	case <-time.After(time.Second):
		t.Fatal("release did not free a slot")
	}

	pool.Release(s2)
	if pool.InUse() != 1 {
		t.Errorf("got %d slots in use", pool.InUse())
	}
}

func TestBufferPool_DoubleRelease(t *testing.T) {
	pool := worker.NewBufferPool(1, 64)
	slot, _ := pool.Acquire(context.Background())
	pool.Release(slot)

	defer func() {
		if recover() == nil {
			t.Error("releasing a free slot should panic")
		}
	}()
	pool.Release(slot)
}
