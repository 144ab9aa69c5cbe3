package player

import "sync"

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateFunc          func(name string) (*Player, error)
	FindFunc            func(name string) (*Player, error)
	SaveFunc            func(p *Player) error
	AllFunc             func() ([]*Player, error)
	AssignChallengeFunc func(challengeID string, names ...string) error
	ClearChallengeFunc  func(names ...string) error
	SaveAllFunc         func(players ...*Player) error

	// Call records
	CreateCalls          []string
	FindCalls            []string
	SaveCalls            []*Player
	AssignChallengeCalls []struct {
		ChallengeID string
		Names       []string
	}
	ClearChallengeCalls [][]string
	SaveAllCalls        [][]*Player
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Create(name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = append(m.CreateCalls, name)
	if m.CreateFunc != nil {
		return m.CreateFunc(name)
	}
	return &Player{Name: name}, nil
}

func (m *MockStore) Find(name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindCalls = append(m.FindCalls, name)
	if m.FindFunc != nil {
		return m.FindFunc(name)
	}
	return nil, &NotFoundError{Name: name}
}

func (m *MockStore) Save(p *Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, p)
	if m.SaveFunc != nil {
		return m.SaveFunc(p)
	}
	return nil
}

func (m *MockStore) All() ([]*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AllFunc != nil {
		return m.AllFunc()
	}
	return nil, nil
}

func (m *MockStore) AssignChallenge(challengeID string, names ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AssignChallengeCalls = append(m.AssignChallengeCalls, struct {
		ChallengeID string
		Names       []string
	}{challengeID, names})
	if m.AssignChallengeFunc != nil {
		return m.AssignChallengeFunc(challengeID, names...)
	}
	return nil
}

func (m *MockStore) ClearChallenge(names ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearChallengeCalls = append(m.ClearChallengeCalls, names)
	if m.ClearChallengeFunc != nil {
		return m.ClearChallengeFunc(names...)
	}
	return nil
}

func (m *MockStore) SaveAll(players ...*Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveAllCalls = append(m.SaveAllCalls, players)
	if m.SaveAllFunc != nil {
		return m.SaveAllFunc(players...)
	}
	return nil
}
