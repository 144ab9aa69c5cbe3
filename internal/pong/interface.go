package pong

import (
	"github.com/mvoss/pongbot/internal/challenge"
	"github.com/mvoss/pongbot/internal/player"
)

// Service is the public operation set the chat layer calls. Every
// operation that resolves player names fails with *player.NotFoundError
// before any other validation, first-named player first.
type Service interface {
	// RegisterPlayer creates a player with zeroed stats. It fails with
	// player.ErrDuplicatePlayer if the name is taken.
	RegisterPlayer(name string) (*player.Player, error)
	// FindPlayer resolves a player by name.
	FindPlayer(name string) (*player.Player, error)
	// GetEveryone returns all registered players.
	GetEveryone() ([]*player.Player, error)
	// UpdateWins increments the player's win counter by one.
	UpdateWins(name string) (*player.Player, error)
	// UpdateLosses increments the player's loss counter by one.
	UpdateLosses(name string) (*player.Player, error)
	// Reset zeroes the player's stats and sets tau back to 1, giving the
	// rating engine a fresh volatility baseline.
	Reset(name string) (*player.Player, error)

	// CheckChallenge returns the player's active challenge, or
	// ErrNoActiveChallenge.
	CheckChallenge(name string) (*challenge.Challenge, error)
	// SetChallenge points the player at the given challenge.
	SetChallenge(name, challengeID string) error
	// RemoveChallenge clears the player's challenge reference. Other
	// participants and the challenge record are left untouched.
	RemoveChallenge(name string) error

	// CreateSingleChallenge opens a one-on-one challenge. Only the
	// challenger's existing-challenge state gates creation.
	CreateSingleChallenge(challengerName, challengedName string) (*ChallengeReceipt, error)
	// CreateDoubleChallenge opens a two-a-side challenge between
	// [c1,c2] and [d1,d2].
	CreateDoubleChallenge(c1, c2, d1, d2 string) (*ChallengeReceipt, error)
	// AcceptChallenge moves the player's Proposed challenge to Accepted.
	AcceptChallenge(name string) (*challenge.Challenge, error)
	// DeclineChallenge moves the player's Proposed challenge to Declined
	// and frees every participant, leaving ratings untouched.
	DeclineChallenge(name string) (*challenge.Challenge, error)

	// Win resolves the reporting players' challenge with their side as
	// the winners. The names must identify exactly one side.
	Win(names ...string) (*MatchResult, error)
	// Lose resolves the reporting players' challenge with their side as
	// the losers.
	Lose(names ...string) (*MatchResult, error)
	// FindDoublesPlayers resolves the four player records of a doubles
	// outcome report.
	FindDoublesPlayers(n1, n2, n3, n4 string) ([]*player.Player, error)

	// DuelGif returns a celebratory image URL.
	DuelGif() (string, error)
}
