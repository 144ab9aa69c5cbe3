package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncChallengesCreated()
	IncMatchesResolved()
	ObserveCommandDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// MetricsStore persists simple usage counters across restarts, as a
// complement to the in-process Prometheus metrics.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
