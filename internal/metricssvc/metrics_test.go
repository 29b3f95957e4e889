package metricssvc

import "testing"

func TestMetricsObserveDoesNotPanic(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("add")
	m.ObserveRequestDuration("add", 0.001)
	m.SetLocalSetSize(5)
}
