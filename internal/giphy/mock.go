package giphy

import "sync"

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	DuelGifFunc func() (string, error)

	// Call records
	DuelGifCalls int
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuelGifCalls = 0
}

func (m *MockClient) DuelGif() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuelGifCalls++
	if m.DuelGifFunc != nil {
		return m.DuelGifFunc()
	}
	return "", nil
}
