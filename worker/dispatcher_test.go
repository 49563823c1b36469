package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/realDragonium/picocraft/worker"
)

func TestDispatcher_FIFO(t *testing.T) {
	d := worker.NewDispatcher(4)
	ctx := context.Background()

	events := []worker.PacketEvent{
		worker.PingRequest{Payload: 1},
		worker.StatusRequest{},
		worker.PingRequest{Payload: 2},
	}
	for _, ev := range events {
		if err := d.Push(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}
	if d.Len() != 3 {
		t.Fatalf("expected 3 queued events but got %d", d.Len())
	}

	var handled []worker.PacketEvent
	err := d.Drain(func(ev worker.PacketEvent) error {
		handled = append(handled, ev)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(events, handled); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if d.Len() != 0 {
		t.Errorf("expected empty queue but %d are left", d.Len())
	}
}

func TestDispatcher_DrainStopsAtError(t *testing.T) {
	d := worker.NewDispatcher(4)
	ctx := context.Background()
	d.Push(ctx, worker.PingRequest{Payload: 1})
	d.Push(ctx, worker.PingRequest{Payload: 2})

	testErr := errors.New("write failed")
	err := d.Drain(func(ev worker.PacketEvent) error {
		return testErr
	})
	if !errors.Is(err, testErr) {
		t.Errorf("got error: %v", err)
	}
	if d.Len() != 1 {
		t.Errorf("expected the second event to stay queued, %d left", d.Len())
	}
}

func TestDispatcher_PushWaitsForRoom(t *testing.T) {
	d := worker.NewDispatcher(1)
	if err := d.Push(context.Background(), worker.StatusRequest{}); err != nil {
		t.Fatal(err)
	}

	pushed := make(chan error, 1)
	go func() {
		pushed <- d.Push(context.Background(), worker.PingRequest{Payload: 9})
	}()

	select {
	case <-pushed:
		t.Fatal("push into a full queue should wait")
	case <-time.After(50 * time.Millisecond):
	}

	var handled []worker.PacketEvent
	d.Drain(func(ev worker.PacketEvent) error {
		handled = append(handled, ev)
		return nil
	})

	select {
	case err := <-pushed:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(time.Second):
		t.Fatal("push did not continue after the queue got room")
	}

	d.Drain(func(ev worker.PacketEvent) error {
		handled = append(handled, ev)
		return nil
	})
	expected := []worker.PacketEvent{worker.StatusRequest{}, worker.PingRequest{Payload: 9}}
	if diff := cmp.Diff(expected, handled); diff != "" {
		t.Errorf("nothing may be dropped (-want +got):\n%s", diff)
	}
}

func TestDispatcher_PushCancelled(t *testing.T) {
	d := worker.NewDispatcher(1)
	d.Push(context.Background(), worker.StatusRequest{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := d.Push(ctx, worker.StatusRequest{}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded but got: %v", err)
	}
}
