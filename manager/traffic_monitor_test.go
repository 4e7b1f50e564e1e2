package manager_test

import (
	"sync"
	"testing"

	"lockin/manager"
)

func TestTrafficMonitorCounts(t *testing.T) {
	m := manager.NewTrafficMonitor()

	doneA := m.Begin()
	doneB := m.Begin()
	if got := m.Snapshot().InFlight; got != 2 {
		t.Fatalf("InFlight = %d, want 2", got)
	}

	doneA(manager.OutcomeOK)
	doneB(manager.OutcomeUpstreamError)
	// A second call is ignored.
	doneB(manager.OutcomeOK)

	s := m.Snapshot()
	if s.InFlight != 0 {
		t.Errorf("InFlight = %d, want 0", s.InFlight)
	}
	if s.Totals[manager.OutcomeOK] != 1 || s.Totals[manager.OutcomeUpstreamError] != 1 {
		t.Errorf("Totals = %v", s.Totals)
	}
}

func TestTrafficMonitorConcurrent(t *testing.T) {
	m := manager.NewTrafficMonitor()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Begin()(manager.OutcomeClientError)
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	if s.InFlight != 0 || s.Totals[manager.OutcomeClientError] != 50 {
		t.Errorf("Snapshot = %+v", s)
	}
}

func TestLogMetricsOnlyOnChange(t *testing.T) {
	m := manager.NewTrafficMonitor()
	if m.LogMetrics() {
		t.Error("LogMetrics() logged with no traffic")
	}
	m.Begin()(manager.OutcomeOK)
	if !m.LogMetrics() {
		t.Error("LogMetrics() did not log after traffic")
	}
	if m.LogMetrics() {
		t.Error("LogMetrics() logged twice without changes")
	}
}

func TestStartReporting(t *testing.T) {
	m := manager.NewTrafficMonitor()
	if _, err := m.StartReporting("not a schedule"); err == nil {
		t.Error("StartReporting() accepted an invalid spec")
	}
	c, err := m.StartReporting("@every 1h")
	if err != nil {
		t.Fatalf("StartReporting() error = %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Errorf("scheduled entries = %d, want 1", len(c.Entries()))
	}
	<-c.Stop().Done()
}
