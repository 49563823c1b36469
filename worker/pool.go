package worker

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"sync/atomic"
)

const DefaultBufferSize = 1024

// Slot is one read/write buffer pair of a BufferPool. The busy flag is set
// for as long as a connection owns the slot.
type Slot struct {
	index int
	busy  atomic.Bool

	Reader *bufio.Reader
	Writer *bufio.Writer
}

func (s *Slot) Index() int {
	return s.index
}

// Attach points both buffers at conn.
func (s *Slot) Attach(conn net.Conn) {
	s.Reader.Reset(conn)
	s.Writer.Reset(conn)
}

// BufferPool is a fixed set of buffer slots, it bounds the amount of
// connections that are served at the same time.
type BufferPool struct {
	slots []*Slot
	free  chan *Slot
	inUse atomic.Int32
}

func NewBufferPool(size, bufferSize int) *BufferPool {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	pool := &BufferPool{
		slots: make([]*Slot, size),
		free:  make(chan *Slot, size),
	}
	for i := range pool.slots {
		slot := &Slot{
			index:  i,
			Reader: bufio.NewReaderSize(nil, bufferSize),
			Writer: bufio.NewWriterSize(nil, bufferSize),
		}
		pool.slots[i] = slot
		pool.free <- slot
	}
	return pool
}

// Acquire waits until a slot is free or ctx is done.
func (p *BufferPool) Acquire(ctx context.Context) (*Slot, error) {
	select {
	case slot := <-p.free:
		if !slot.busy.CompareAndSwap(false, true) {
			panic(fmt.Sprintf("worker: buffer slot %d handed out while still in use", slot.index))
		}
		poolSlotsInUse.Set(float64(p.inUse.Add(1)))
		return slot, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Release gives the slot back. The caller must be completely done with the
// connection that used it.
func (p *BufferPool) Release(slot *Slot) {
	slot.Reader.Reset(nil)
	slot.Writer.Reset(nil)
	if !slot.busy.CompareAndSwap(true, false) {
		panic(fmt.Sprintf("worker: buffer slot %d released twice", slot.index))
	}
	poolSlotsInUse.Set(float64(p.inUse.Add(-1)))
	p.free <- slot
}

func (p *BufferPool) InUse() int {
	return int(p.inUse.Load())
}

func (p *BufferPool) Size() int {
	return len(p.slots)
}
