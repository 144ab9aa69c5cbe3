package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventChallengeCreated EventType = "challenge-created"
	EventMatchResolved    EventType = "match-resolved"
	EventPlayerReset      EventType = "player-reset"
)

// ChallengeCreatedEvent is published when a challenge enters the system.
type ChallengeCreatedEvent struct {
	ChallengeID string   `msgpack:"challenge_id"`
	Type        string   `msgpack:"type"`
	Challengers []string `msgpack:"challengers"`
	Challenged  []string `msgpack:"challenged"`
}

// MatchResolvedEvent is published after a match result has been recorded
// and ratings updated.
type MatchResolvedEvent struct {
	ChallengeID string   `msgpack:"challenge_id"`
	Winners     []string `msgpack:"winners"`
	Losers      []string `msgpack:"losers"`
}

// PlayerResetEvent is published when a player's stats are wiped back to
// the baseline.
type PlayerResetEvent struct {
	Name string `msgpack:"name"`
}
