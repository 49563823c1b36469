package worker

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/realDragonium/picocraft/config"
)

// Server runs a Session for every accepted connection.
type Server struct {
	pool    *BufferPool
	table   *Table
	status  StatusSource
	cfg     config.WorkerConfig
	limiter ConnLimiter
	log     zerolog.Logger
	wg      sync.WaitGroup
}

func NewServer(pool *BufferPool, table *Table, status StatusSource, cfg config.WorkerConfig) *Server {
	return &Server{
		pool:    pool,
		table:   table,
		status:  status,
		cfg:     cfg,
		limiter: AlwaysAllowConnection{},
		log:     config.ComponentLogger("listener"),
	}
}

// UseLimiter has to be called before Serve.
func (s *Server) UseLimiter(limiter ConnLimiter) {
	s.limiter = limiter
}

// Serve accepts connections until ctx is done or ln gets closed. A buffer
// slot is acquired before accepting, so while every slot is in use new
// clients wait in the listen backlog.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		ln.Close()
	})
	defer stop()

	var retryDelay time.Duration
	for {
		slot, err := s.pool.Acquire(ctx)
		if err != nil {
			return nil
		}

		conn, err := ln.Accept()
		if err != nil {
			s.pool.Release(slot)
			if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
				s.log.Info().Msg("listener was closed, stopping with accepting connections")
				return nil
			}
			retryDelay = nextRetryDelay(retryDelay)
			s.log.Warn().Err(err).Dur("retryIn", retryDelay).Msg("accepting connection failed")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(retryDelay):
			}
			continue
		}
		retryDelay = 0

		connectionsTotal.Inc()
		s.wg.Add(1)
		go s.serveConn(ctx, conn, slot)
	}
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn, slot *Slot) {
	defer s.wg.Done()
	defer s.pool.Release(slot)
	defer conn.Close()

	// RemoteAddr blocks until a PROXY protocol header has been read.
	if !s.limiter.Allow(conn.RemoteAddr()) {
		sessionsClosed.WithLabelValues("rate_limited").Inc()
		s.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("over the connection rate limit")
		return
	}

	activeSessions.Inc()
	defer activeSessions.Dec()

	session := NewSession(conn, slot, s.table, s.status, s.cfg)
	err := session.Run(ctx)

	reason := closeReason(err)
	sessionsClosed.WithLabelValues(reason).Inc()

	event := s.log.Info()
	if reason == "malformed" || reason == "other" {
		event = s.log.Warn()
	}
	event.Err(err).
		Str("remote", conn.RemoteAddr().String()).
		Stringer("state", session.State()).
		Str("reason", reason).
		Msg("connection ended")
}

// Wait blocks until every session started by Serve has ended.
func (s *Server) Wait() {
	s.wg.Wait()
}

const (
	minRetryDelay = 5 * time.Millisecond
	maxRetryDelay = time.Second
)

// nextRetryDelay doubles the wait after every failed Accept in a row.
func nextRetryDelay(last time.Duration) time.Duration {
	if last == 0 {
		return minRetryDelay
	}
	if last *= 2; last > maxRetryDelay {
		return maxRetryDelay
	}
	return last
}
