package worker

import (
	"context"
	"errors"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/realDragonium/picocraft/mc"
)

var (
	connectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "picocraft",
		Name:      "connections_total",
		Help:      "The total number of accepted connections",
	})
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "picocraft",
		Name:      "active_sessions",
		Help:      "The number of connections currently being served",
	})
	poolSlotsInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "picocraft",
		Name:      "pool_slots_in_use",
		Help:      "The number of buffer slots owned by a connection",
	})
	packetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "picocraft",
		Name:      "packets_total",
		Help:      "The total number of decoded packets",
	}, []string{"state", "result"})
	sessionsClosed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "picocraft",
		Name:      "sessions_closed_total",
		Help:      "The total number of finished sessions",
	}, []string{"reason"})

	responseBuckets  = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5}
	responseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "picocraft",
		Name:      "response_duration_seconds",
		Help:      "Histogram of the time spent building and writing responses.",
		Buckets:   responseBuckets,
	}, []string{"type"})
)

func stateLabel(state mc.State) string {
	if state.IsCustom() {
		return "custom"
	}
	return strings.ToLower(state.String())
}

func closeReason(err error) string {
	switch {
	case err == nil:
		return "done"
	case errors.Is(err, mc.ErrConnectionClosed):
		return "closed"
	case errors.Is(err, mc.ErrTimeout):
		return "timeout"
	case errors.Is(err, mc.ErrMalformed):
		return "malformed"
	case errors.Is(err, context.Canceled):
		return "shutdown"
	}
	return "other"
}
