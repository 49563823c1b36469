package worker

import (
	"sync/atomic"

	"github.com/realDragonium/picocraft/config"
	"github.com/realDragonium/picocraft/mc"
)

// StatusSource hands out the status snapshot to answer with. Snapshots are
// never modified after they have been handed out.
type StatusSource interface {
	Status() mc.StatusPayload
}

// StatusHolder keeps the current snapshot and lets it be swapped while
// sessions are reading it.
type StatusHolder struct {
	current atomic.Pointer[mc.StatusPayload]
}

func NewStatusHolder(status mc.StatusPayload) *StatusHolder {
	h := &StatusHolder{}
	h.Store(status)
	return h
}

func (h *StatusHolder) Status() mc.StatusPayload {
	return *h.current.Load()
}

func (h *StatusHolder) Store(status mc.StatusPayload) {
	h.current.Store(&status)
}

// Reload replaces the snapshot with a freshly read one. The old snapshot
// stays in place when reading fails.
func (h *StatusHolder) Reload(read config.StatusReader) error {
	status, err := read()
	if err != nil {
		return err
	}
	h.Store(status)
	return nil
}
