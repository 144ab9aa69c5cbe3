package pong

import (
	"errors"
	"fmt"
)

// ErrNoActiveChallenge is returned when an operation needs the player's
// active challenge and there is none.
var ErrNoActiveChallenge = errors.New("no active challenge")

// ErrChallengeMismatch is returned when the participants of a challenge do
// not all point back at it, which means the records have drifted.
var ErrChallengeMismatch = errors.New("participants do not share the same active challenge")

// ErrDuplicateParticipant is returned when the same player is named more
// than once across the two sides of a new challenge.
var ErrDuplicateParticipant = errors.New("a player cannot appear twice in a challenge")

// ErrChallengeNotProposed is returned when accepting or declining a
// challenge that is no longer awaiting a response.
var ErrChallengeNotProposed = errors.New("challenge is not awaiting a response")

// ErrChallengeNotOpen is returned when reporting a result for a challenge
// that has already reached a terminal state.
var ErrChallengeNotOpen = errors.New("challenge is no longer open")

// ErrUnknownTeam is returned when the reported players do not identify
// exactly one side of the challenge.
var ErrUnknownTeam = errors.New("reported players do not form one side of the challenge")

// ActiveChallengeError is returned when a challenger tries to open a new
// challenge while still tied up in a previous one.
type ActiveChallengeError struct {
	Name string
}

func (e *ActiveChallengeError) Error() string {
	return fmt.Sprintf("There's already an active challenge for %s", e.Name)
}
