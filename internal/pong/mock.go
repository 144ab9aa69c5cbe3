package pong

import (
	"sync"

	"github.com/mvoss/pongbot/internal/challenge"
	"github.com/mvoss/pongbot/internal/player"
)

// MockService is a mock implementation of the Service interface for
// testing. It is safe for concurrent use.
type MockService struct {
	mu sync.Mutex

	// Spies for method calls
	RegisterPlayerFunc        func(name string) (*player.Player, error)
	FindPlayerFunc            func(name string) (*player.Player, error)
	GetEveryoneFunc           func() ([]*player.Player, error)
	UpdateWinsFunc            func(name string) (*player.Player, error)
	UpdateLossesFunc          func(name string) (*player.Player, error)
	ResetFunc                 func(name string) (*player.Player, error)
	CheckChallengeFunc        func(name string) (*challenge.Challenge, error)
	SetChallengeFunc          func(name, challengeID string) error
	RemoveChallengeFunc       func(name string) error
	CreateSingleChallengeFunc func(challengerName, challengedName string) (*ChallengeReceipt, error)
	CreateDoubleChallengeFunc func(c1, c2, d1, d2 string) (*ChallengeReceipt, error)
	AcceptChallengeFunc       func(name string) (*challenge.Challenge, error)
	DeclineChallengeFunc      func(name string) (*challenge.Challenge, error)
	WinFunc                   func(names ...string) (*MatchResult, error)
	LoseFunc                  func(names ...string) (*MatchResult, error)
	FindDoublesPlayersFunc    func(n1, n2, n3, n4 string) ([]*player.Player, error)
	DuelGifFunc               func() (string, error)

	// Call records
	RegisterPlayerCalls        []string
	FindPlayerCalls            []string
	GetEveryoneCalls           int
	UpdateWinsCalls            []string
	UpdateLossesCalls          []string
	ResetCalls                 []string
	CheckChallengeCalls        []string
	SetChallengeCalls          []SetChallengeCall
	RemoveChallengeCalls       []string
	CreateSingleChallengeCalls []CreateSingleChallengeCall
	CreateDoubleChallengeCalls []CreateDoubleChallengeCall
	AcceptChallengeCalls       []string
	DeclineChallengeCalls      []string
	WinCalls                   [][]string
	LoseCalls                  [][]string
	FindDoublesPlayersCalls    []CreateDoubleChallengeCall
	DuelGifCalls               int
}

// SetChallengeCall holds the arguments for a call to SetChallenge.
type SetChallengeCall struct {
	Name        string
	ChallengeID string
}

// CreateSingleChallengeCall holds the arguments for a call to CreateSingleChallenge.
type CreateSingleChallengeCall struct {
	Challenger string
	Challenged string
}

// CreateDoubleChallengeCall holds four player names in argument order.
type CreateDoubleChallengeCall struct {
	N1, N2, N3, N4 string
}

// NewMockService creates a new mock instance.
func NewMockService() *MockService {
	return &MockService{}
}

// ClearCalls wipes all call records. Reset is taken by the Service
// interface, hence the different name.
func (m *MockService) ClearCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterPlayerCalls = nil
	m.FindPlayerCalls = nil
	m.GetEveryoneCalls = 0
	m.UpdateWinsCalls = nil
	m.UpdateLossesCalls = nil
	m.ResetCalls = nil
	m.CheckChallengeCalls = nil
	m.SetChallengeCalls = nil
	m.RemoveChallengeCalls = nil
	m.CreateSingleChallengeCalls = nil
	m.CreateDoubleChallengeCalls = nil
	m.AcceptChallengeCalls = nil
	m.DeclineChallengeCalls = nil
	m.WinCalls = nil
	m.LoseCalls = nil
	m.FindDoublesPlayersCalls = nil
	m.DuelGifCalls = 0
}

func (m *MockService) Reset(name string) (*player.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResetCalls = append(m.ResetCalls, name)
	if m.ResetFunc != nil {
		return m.ResetFunc(name)
	}
	return &player.Player{Name: name, Tau: 1}, nil
}

func (m *MockService) RegisterPlayer(name string) (*player.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterPlayerCalls = append(m.RegisterPlayerCalls, name)
	if m.RegisterPlayerFunc != nil {
		return m.RegisterPlayerFunc(name)
	}
	return &player.Player{Name: name}, nil
}

func (m *MockService) FindPlayer(name string) (*player.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindPlayerCalls = append(m.FindPlayerCalls, name)
	if m.FindPlayerFunc != nil {
		return m.FindPlayerFunc(name)
	}
	return &player.Player{Name: name}, nil
}

func (m *MockService) GetEveryone() ([]*player.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetEveryoneCalls++
	if m.GetEveryoneFunc != nil {
		return m.GetEveryoneFunc()
	}
	return []*player.Player{}, nil
}

func (m *MockService) UpdateWins(name string) (*player.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateWinsCalls = append(m.UpdateWinsCalls, name)
	if m.UpdateWinsFunc != nil {
		return m.UpdateWinsFunc(name)
	}
	return &player.Player{Name: name, Wins: 1}, nil
}

func (m *MockService) UpdateLosses(name string) (*player.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateLossesCalls = append(m.UpdateLossesCalls, name)
	if m.UpdateLossesFunc != nil {
		return m.UpdateLossesFunc(name)
	}
	return &player.Player{Name: name, Losses: 1}, nil
}

func (m *MockService) CheckChallenge(name string) (*challenge.Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckChallengeCalls = append(m.CheckChallengeCalls, name)
	if m.CheckChallengeFunc != nil {
		return m.CheckChallengeFunc(name)
	}
	return &challenge.Challenge{}, nil
}

func (m *MockService) SetChallenge(name, challengeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetChallengeCalls = append(m.SetChallengeCalls, SetChallengeCall{Name: name, ChallengeID: challengeID})
	if m.SetChallengeFunc != nil {
		return m.SetChallengeFunc(name, challengeID)
	}
	return nil
}

func (m *MockService) RemoveChallenge(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RemoveChallengeCalls = append(m.RemoveChallengeCalls, name)
	if m.RemoveChallengeFunc != nil {
		return m.RemoveChallengeFunc(name)
	}
	return nil
}

func (m *MockService) CreateSingleChallenge(challengerName, challengedName string) (*ChallengeReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateSingleChallengeCalls = append(m.CreateSingleChallengeCalls, CreateSingleChallengeCall{Challenger: challengerName, Challenged: challengedName})
	if m.CreateSingleChallengeFunc != nil {
		return m.CreateSingleChallengeFunc(challengerName, challengedName)
	}
	return &ChallengeReceipt{Challenge: &challenge.Challenge{}}, nil
}

func (m *MockService) CreateDoubleChallenge(c1, c2, d1, d2 string) (*ChallengeReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateDoubleChallengeCalls = append(m.CreateDoubleChallengeCalls, CreateDoubleChallengeCall{N1: c1, N2: c2, N3: d1, N4: d2})
	if m.CreateDoubleChallengeFunc != nil {
		return m.CreateDoubleChallengeFunc(c1, c2, d1, d2)
	}
	return &ChallengeReceipt{Challenge: &challenge.Challenge{}}, nil
}

func (m *MockService) AcceptChallenge(name string) (*challenge.Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AcceptChallengeCalls = append(m.AcceptChallengeCalls, name)
	if m.AcceptChallengeFunc != nil {
		return m.AcceptChallengeFunc(name)
	}
	return &challenge.Challenge{}, nil
}

func (m *MockService) DeclineChallenge(name string) (*challenge.Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeclineChallengeCalls = append(m.DeclineChallengeCalls, name)
	if m.DeclineChallengeFunc != nil {
		return m.DeclineChallengeFunc(name)
	}
	return &challenge.Challenge{}, nil
}

func (m *MockService) Win(names ...string) (*MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WinCalls = append(m.WinCalls, names)
	if m.WinFunc != nil {
		return m.WinFunc(names...)
	}
	return &MatchResult{Challenge: &challenge.Challenge{}}, nil
}

func (m *MockService) Lose(names ...string) (*MatchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoseCalls = append(m.LoseCalls, names)
	if m.LoseFunc != nil {
		return m.LoseFunc(names...)
	}
	return &MatchResult{Challenge: &challenge.Challenge{}}, nil
}

func (m *MockService) FindDoublesPlayers(n1, n2, n3, n4 string) ([]*player.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindDoublesPlayersCalls = append(m.FindDoublesPlayersCalls, CreateDoubleChallengeCall{N1: n1, N2: n2, N3: n3, N4: n4})
	if m.FindDoublesPlayersFunc != nil {
		return m.FindDoublesPlayersFunc(n1, n2, n3, n4)
	}
	return []*player.Player{}, nil
}

func (m *MockService) DuelGif() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuelGifCalls++
	if m.DuelGifFunc != nil {
		return m.DuelGifFunc()
	}
	return "", nil
}
