package client

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// SessionMetrics contains atomic metrics for a session.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type SessionMetrics struct {
	// AuthCount indicates the number of successful authentication handshakes.
	AuthCount atomic.Uint64
	// AuthErrCount indicates the number of failed authentication handshakes.
	AuthErrCount atomic.Uint64
	// RequestCount indicates the number of dispatched action calls.
	RequestCount atomic.Uint64
	// RequestErrCount indicates the number of action calls that failed with
	// a transport or protocol error.
	RequestErrCount atomic.Uint64

	actionCounts *xsync.MapOf[string, *xsync.Counter]
}

// ActionCount returns the number of calls dispatched for the named action.
func (m *SessionMetrics) ActionCount(action string) int64 {
	counter, ok := m.actionCounts.Load(action)
	if !ok {
		return 0
	}

	return counter.Value()
}

func (m *SessionMetrics) init() {
	m.actionCounts = xsync.NewMapOf[string, *xsync.Counter]()
}

func (m *SessionMetrics) incAuthCount() {
	m.AuthCount.Add(1)
}

func (m *SessionMetrics) incAuthErrCount() {
	m.AuthErrCount.Add(1)
}

func (m *SessionMetrics) incRequestCount(action string) {
	m.RequestCount.Add(1)
	counter, _ := m.actionCounts.LoadOrCompute(action, xsync.NewCounter)
	counter.Inc()
}

func (m *SessionMetrics) incRequestErrCount() {
	m.RequestErrCount.Add(1)
}
