package notifier

import (
	"sync"

	"github.com/mvoss/pongbot/internal/player"
	"github.com/mvoss/pongbot/internal/pong"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendChallengeNoticeCalls []struct {
		Receipt *pong.ChallengeReceipt
		GifURL  string
	}
	SendMatchResultCalls    []struct{ Result *pong.MatchResult }
	SendLeaderboardCalls    [][]*player.Player
	SendPlayerStatsCalls    []struct{ Player *player.Player }
	SendPlayerNotFoundCalls []string

	// Spies for format functions
	FormatChallengeNoticeResponseFunc func(receipt *pong.ChallengeReceipt, gifURL string) (any, error)
	FormatMatchResultResponseFunc     func(result *pong.MatchResult) (any, error)
	FormatLeaderboardResponseFunc     func(players []*player.Player) (any, error)
	FormatPlayerStatsResponseFunc     func(p *player.Player) (any, error)
	FormatPlayerNotFoundResponseFunc  func(query string) (any, error)

	// Call records for format functions
	LastChallengeNoticeResponse any
	LastMatchResultResponse     any
	LastLeaderboardResponse     any
	LastPlayerStatsResponse     any
	LastPlayerNotFoundResponse  any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendChallengeNoticeCalls = nil
	m.SendMatchResultCalls = nil
	m.SendLeaderboardCalls = nil
	m.SendPlayerStatsCalls = nil
	m.SendPlayerNotFoundCalls = nil
	m.LastChallengeNoticeResponse = nil
	m.LastMatchResultResponse = nil
	m.LastLeaderboardResponse = nil
	m.LastPlayerStatsResponse = nil
	m.LastPlayerNotFoundResponse = nil
}

func (m *Mock) SendChallengeNotice(receipt *pong.ChallengeReceipt, gifURL string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendChallengeNoticeCalls = append(m.SendChallengeNoticeCalls, struct {
		Receipt *pong.ChallengeReceipt
		GifURL  string
	}{receipt, gifURL})
	return nil
}

func (m *Mock) SendMatchResult(result *pong.MatchResult, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct{ Result *pong.MatchResult }{result})
	return nil
}

func (m *Mock) SendLeaderboard(players []*player.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, players)
	return nil
}

func (m *Mock) SendPlayerStats(p *player.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerStatsCalls = append(m.SendPlayerStatsCalls, struct{ Player *player.Player }{p})
	return nil
}

func (m *Mock) SendPlayerNotFound(query string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPlayerNotFoundCalls = append(m.SendPlayerNotFoundCalls, query)
	return nil
}

func (m *Mock) FormatChallengeNoticeResponse(receipt *pong.ChallengeReceipt, gifURL string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatChallengeNoticeResponseFunc != nil {
		resp, err := m.FormatChallengeNoticeResponseFunc(receipt, gifURL)
		m.LastChallengeNoticeResponse = resp
		return resp, err
	}
	return "formatted_challenge_notice", nil
}

func (m *Mock) FormatMatchResultResponse(result *pong.MatchResult) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatMatchResultResponseFunc != nil {
		resp, err := m.FormatMatchResultResponseFunc(result)
		m.LastMatchResultResponse = resp
		return resp, err
	}
	return "formatted_match_result", nil
}

func (m *Mock) FormatLeaderboardResponse(players []*player.Player) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(players)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	return "formatted_leaderboard", nil
}

func (m *Mock) FormatPlayerStatsResponse(p *player.Player) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerStatsResponseFunc != nil {
		resp, err := m.FormatPlayerStatsResponseFunc(p)
		m.LastPlayerStatsResponse = resp
		return resp, err
	}
	return "formatted_player_stats", nil
}

func (m *Mock) FormatPlayerNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatPlayerNotFoundResponseFunc != nil {
		resp, err := m.FormatPlayerNotFoundResponseFunc(query)
		m.LastPlayerNotFoundResponse = resp
		return resp, err
	}
	return "formatted_player_not_found", nil
}
