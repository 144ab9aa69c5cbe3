package pong

import (
	"github.com/mvoss/pongbot/internal/challenge"
	"github.com/mvoss/pongbot/internal/giphy"
	"github.com/mvoss/pongbot/internal/metrics"
	"github.com/mvoss/pongbot/internal/player"
	"github.com/mvoss/pongbot/internal/pubsub"
	"github.com/mvoss/pongbot/internal/rating"
)

// service orchestrates the challenge state machine on top of the stores.
type service struct {
	players    player.Store
	challenges challenge.Store
	rating     *rating.Engine
	gifs       giphy.Client
	pubsub     pubsub.PubSubClient
	metrics    metrics.Metrics
}

// ChallengeReceipt is the success payload of a challenge creation. Notice
// carries the human-readable confirmation line for the chat transport; it
// travels with the result, not through the error channel.
type ChallengeReceipt struct {
	Challenge *challenge.Challenge
	Notice    string
}

// MatchResult is the outcome of a resolved challenge, with the updated
// player records on both sides.
type MatchResult struct {
	Challenge *challenge.Challenge
	Winners   []*player.Player
	Losers    []*player.Player
}
