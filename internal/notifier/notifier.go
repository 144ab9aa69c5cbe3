package notifier

import (
	"github.com/mvoss/pongbot/internal/player"
	"github.com/mvoss/pongbot/internal/pong"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For new challenges
	SendChallengeNotice(receipt *pong.ChallengeReceipt, gifURL string, dryRun bool) error
	// For resolved matches
	SendMatchResult(result *pong.MatchResult, dryRun bool) error
	// For slash commands
	SendLeaderboard(players []*player.Player, dryRun bool) error
	SendPlayerStats(p *player.Player, dryRun bool) error
	SendPlayerNotFound(query string, dryRun bool) error

	// For formatting responses for slash commands
	FormatChallengeNoticeResponse(receipt *pong.ChallengeReceipt, gifURL string) (any, error)
	FormatMatchResultResponse(result *pong.MatchResult) (any, error)
	FormatLeaderboardResponse(players []*player.Player) (any, error)
	FormatPlayerStatsResponse(p *player.Player) (any, error)
	FormatPlayerNotFoundResponse(query string) (any, error)
}
