package worker

import "context"

const DefaultEventQueueSize = 4

// Dispatcher is the bounded FIFO queue between decoding a frame and acting
// on what it asked for.
type Dispatcher struct {
	queue chan PacketEvent
}

func NewDispatcher(size int) *Dispatcher {
	if size < 1 {
		size = DefaultEventQueueSize
	}
	return &Dispatcher{
		queue: make(chan PacketEvent, size),
	}
}

// Push waits for room in the queue instead of dropping ev.
func (d *Dispatcher) Push(ctx context.Context, ev PacketEvent) error {
	select {
	case d.queue <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain hands every queued event to handle in the order they were pushed.
// It stops at the first error, later events stay queued.
func (d *Dispatcher) Drain(handle func(PacketEvent) error) error {
	for {
		select {
		case ev := <-d.queue:
			if err := handle(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (d *Dispatcher) Len() int {
	return len(d.queue)
}
