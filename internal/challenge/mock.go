package challenge

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateFunc func(c *Challenge) error
	GetFunc    func(id string) (*Challenge, error)
	SaveFunc   func(c *Challenge) error
	DeleteFunc func(id string) error

	// Call records
	CreateCalls []*Challenge
	GetCalls    []string
	SaveCalls   []*Challenge
	DeleteCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Create(c *Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, c)
	if m.CreateFunc != nil {
		return m.CreateFunc(c)
	}
	return nil
}

func (m *MockStore) Get(id string) (*Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, id)
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, &NotFoundError{ID: id}
}

func (m *MockStore) Save(c *Challenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, c)
	if m.SaveFunc != nil {
		return m.SaveFunc(c)
	}
	return nil
}

func (m *MockStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}
