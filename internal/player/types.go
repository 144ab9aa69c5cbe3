package player

import (
	"database/sql"
	"fmt"
	"sync"
)

// store handles all database operations for players.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is a registered member of the ping pong ladder. Name is the
// unique identifier and never changes after registration.
type Player struct {
	Name               string  `json:"name"`
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	Elo                float64 `json:"elo"`
	Tau                float64 `json:"tau"`
	CurrentChallengeID *string `json:"current_challenge_id,omitempty"`
}

// HasActiveChallenge reports whether the player is currently tied up in a
// challenge.
func (p *Player) HasActiveChallenge() bool {
	return p.CurrentChallengeID != nil
}

// WinPercentage derives the player's win rate from their counters.
func (p *Player) WinPercentage() float64 {
	played := p.Wins + p.Losses
	if played == 0 {
		return 0
	}
	return (float64(p.Wins) / float64(played)) * 100
}

// NotFoundError is returned when a player name cannot be resolved.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("User '%s' does not exist.", e.Name)
}
