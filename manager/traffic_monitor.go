package manager

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
)

// Outcome classifies how a relay request finished.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeClientError   Outcome = "client_error"
	OutcomeConfigError   Outcome = "config_error"
	OutcomeUpstreamError Outcome = "upstream_error"
	OutcomeInternalError Outcome = "internal_error"
)

var outcomes = []Outcome{
	OutcomeOK,
	OutcomeClientError,
	OutcomeConfigError,
	OutcomeUpstreamError,
	OutcomeInternalError,
}

// Snapshot is a point-in-time copy of the monitor's counters.
type Snapshot struct {
	InFlight int
	Totals   map[Outcome]int
}

// TrafficMonitor counts in-flight and finished relay requests. It only
// observes; it never blocks or rejects a request.
type TrafficMonitor struct {
	mu       sync.Mutex
	inFlight int
	totals   map[Outcome]int
	changed  bool
}

// NewTrafficMonitor creates a TrafficMonitor with zeroed counters.
func NewTrafficMonitor() *TrafficMonitor {
	return &TrafficMonitor{
		totals: make(map[Outcome]int),
	}
}

// Begin marks a request as in flight. The returned func must be called
// exactly once with the request's outcome.
func (m *TrafficMonitor) Begin() func(Outcome) {
	m.mu.Lock()
	m.inFlight++
	m.changed = true
	m.mu.Unlock()

	var once sync.Once
	return func(o Outcome) {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.inFlight > 0 {
				m.inFlight--
			}
			m.totals[o]++
			m.changed = true
		})
	}
}

func (m *TrafficMonitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	totals := make(map[Outcome]int, len(m.totals))
	for k, v := range m.totals {
		totals[k] = v
	}
	return Snapshot{InFlight: m.inFlight, Totals: totals}
}

// LogMetrics logs the counters if they changed since the last call.
// It reports whether a line was written.
func (m *TrafficMonitor) LogMetrics() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.changed {
		return false
	}
	fields := map[string]interface{}{"in_flight": m.inFlight}
	for _, o := range outcomes {
		fields[string(o)] = m.totals[o]
	}
	log.WithFields(fields).Info("Relay traffic")
	m.changed = false
	return true
}

// StartReporting schedules LogMetrics on a cron spec such as "@every 1m".
// Stop the returned scheduler on shutdown.
func (m *TrafficMonitor) StartReporting(spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { m.LogMetrics() }); err != nil {
		return nil, fmt.Errorf("invalid stats schedule %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
