package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	challengesCreated int
	matchesResolved   int
	commandDurations  []float64
	slackNotifSent    int
	slackNotifFailed  int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		commandDurations: make([]float64, 0),
	}
}

func (m *Mock) IncChallengesCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.challengesCreated++
}

func (m *Mock) IncMatchesResolved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesResolved++
}

func (m *Mock) ObserveCommandDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commandDurations = append(m.commandDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// ChallengesCreated returns the number of times IncChallengesCreated was called.
func (m *Mock) ChallengesCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.challengesCreated
}

// MatchesResolved returns the number of times IncMatchesResolved was called.
func (m *Mock) MatchesResolved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesResolved
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
