package worker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"

	"github.com/realDragonium/picocraft/config"
	"github.com/realDragonium/picocraft/mc"
)

// Session serves a single connection. Frames are handled strictly in the
// order they arrive and every event of a frame has been handled before the
// next frame is read.
type Session struct {
	conn    net.Conn
	mcConn  *mc.McConn
	machine *StateMachine
	events  *Dispatcher
	status  StatusSource
	cfg     config.WorkerConfig
	log     zerolog.Logger
}

// NewSession reads and writes through the buffers of slot. The slot must stay
// acquired until Run has returned.
func NewSession(conn net.Conn, slot *Slot, table *Table, status StatusSource, cfg config.WorkerConfig) *Session {
	slot.Attach(conn)
	return &Session{
		conn:    conn,
		mcConn:  mc.NewBufferedMcConn(slot.Reader, slot.Writer, cfg.MaxFrameLength),
		machine: NewStateMachine(table),
		events:  NewDispatcher(cfg.EventQueueSize),
		status:  status,
		cfg:     cfg,
		log: config.ComponentLogger("session").With().
			Str("remote", conn.RemoteAddr().String()).
			Int("slot", slot.Index()).
			Logger(),
	}
}

func (s *Session) State() mc.State {
	return s.machine.State()
}

// Run serves the connection until it ends. The returned error wraps
// mc.ErrConnectionClosed, mc.ErrTimeout or mc.ErrMalformed, or is ctx.Err()
// when ctx was done first. The connection is closed when ctx is done.
func (s *Session) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		s.conn.Close()
	})
	defer stop()

	// a deadline may be left over from reading a PROXY protocol header
	if s.cfg.IdleTimeout <= 0 {
		s.conn.SetDeadline(time.Time{})
	}

	for {
		if err := s.step(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
}

func (s *Session) step(ctx context.Context) error {
	if s.cfg.IdleTimeout > 0 {
		s.conn.SetDeadline(time.Now().Add(s.cfg.IdleTimeout))
	}

	pk, err := s.mcConn.ReadPacket()
	if err != nil {
		return err
	}

	state := s.machine.State()
	ev, err := s.machine.Decode(pk)
	if errors.Is(err, mc.ErrUnknownPacket) {
		packetsTotal.WithLabelValues(stateLabel(state), "unknown").Inc()
		s.log.Debug().
			Stringer("state", state).
			Int32("id", pk.ID).
			Int("length", len(pk.Data)).
			Msg("ignoring unknown packet")
		return nil
	} else if err != nil {
		packetsTotal.WithLabelValues(stateLabel(state), "malformed").Inc()
		return err
	}
	packetsTotal.WithLabelValues(stateLabel(state), "ok").Inc()
	s.log.Debug().
		Stringer("state", state).
		Int32("id", pk.ID).
		Str("event", eventType(ev)).
		Msg("decoded packet")

	if err := s.events.Push(ctx, ev); err != nil {
		return err
	}
	return s.events.Drain(s.handle)
}

func (s *Session) handle(ev PacketEvent) error {
	start := time.Now()
	switch ev := ev.(type) {
	case ChangeState:
		s.log.Debug().
			Stringer("from", s.machine.State()).
			Stringer("to", ev.State).
			Str("address", ev.ServerAddress).
			Int32("protocol", ev.Protocol).
			Bool("forge", ev.Forge).
			Msg("changing state")
		s.machine.Apply(ev)
		return nil
	case StatusRequest:
		pk, err := s.status.Status().Marshal()
		if err != nil {
			return fmt.Errorf("building status response: %w", err)
		}
		if err := s.mcConn.WritePacket(pk); err != nil {
			return err
		}
	case PingRequest:
		pong := mc.ClientBoundPong{
			Payload: mc.Long(ev.Payload),
		}
		if err := s.mcConn.WritePacket(pong.Marshal()); err != nil {
			return err
		}
	default:
		return fmt.Errorf("no handler for %T", ev)
	}
	responseDuration.WithLabelValues(eventType(ev)).Observe(time.Since(start).Seconds())
	return nil
}
