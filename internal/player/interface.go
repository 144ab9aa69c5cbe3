package player

import "errors"

// ErrDuplicatePlayer is returned when registering a name that already exists.
var ErrDuplicatePlayer = errors.New("player is already registered")

// Store defines the durable mapping from a unique player name to a player
// record.
type Store interface {
	// Create inserts a fresh player with zeroed stats. It fails with
	// ErrDuplicatePlayer if the name is taken, leaving no partial effects.
	Create(name string) (*Player, error)
	// Find resolves a player by name, failing with *NotFoundError.
	Find(name string) (*Player, error)
	// Save persists an updated player record.
	Save(p *Player) error
	// All returns every registered player.
	All() ([]*Player, error)
	// AssignChallenge points every named player at the given challenge in a
	// single transaction.
	AssignChallenge(challengeID string, names ...string) error
	// ClearChallenge drops the challenge reference of every named player in
	// a single transaction. Players without a reference are left untouched.
	ClearChallenge(names ...string) error
	// SaveAll persists the given players in a single transaction.
	SaveAll(players ...*Player) error
}
