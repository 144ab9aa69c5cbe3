package challenge

import (
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// store handles all database operations for challenges.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Type distinguishes one-on-one matches from two-a-side matches.
type Type string

const (
	TypeSingle Type = "Single"
	TypeDouble Type = "Double"
)

// State tracks a challenge through its lifecycle. Proposed is the only
// state reachable from creation; the rest are caller-driven transitions.
type State string

const (
	StateProposed  State = "Proposed"
	StateAccepted  State = "Accepted"
	StateDeclined  State = "Declined"
	StateCompleted State = "Completed"
)

// Challenge is a proposed or resolved match between two individuals or two
// pairs. Team slices are ordered: the first named player initiated the
// challenge.
type Challenge struct {
	ID             string    `json:"id"`
	Type           Type      `json:"type"`
	State          State     `json:"state"`
	Date           time.Time `json:"date"`
	ChallengerTeam []string  `json:"challenger_team"`
	ChallengedTeam []string  `json:"challenged_team"`
}

// Players returns every participant, challengers first.
func (c *Challenge) Players() []string {
	names := make([]string, 0, len(c.ChallengerTeam)+len(c.ChallengedTeam))
	names = append(names, c.ChallengerTeam...)
	names = append(names, c.ChallengedTeam...)
	return names
}

// TeamSize is the required number of players per side for the challenge type.
func (t Type) TeamSize() int {
	if t == TypeDouble {
		return 2
	}
	return 1
}

// NotFoundError is returned when a challenge id cannot be resolved.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("challenge '%s' does not exist", e.ID)
}
