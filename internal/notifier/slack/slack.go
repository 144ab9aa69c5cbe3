package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mvoss/pongbot/internal/metrics"
	"github.com/mvoss/pongbot/internal/notifier"
	"github.com/mvoss/pongbot/internal/player"
	"github.com/mvoss/pongbot/internal/pong"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendChallengeNotice(receipt *pong.ChallengeReceipt, gifURL string, dryRun bool) error {
	msg := s.formatChallengeNotice(receipt, gifURL)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendMatchResult(result *pong.MatchResult, dryRun bool) error {
	msg := s.formatMatchResult(result)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(players []*player.Player, dryRun bool) error {
	msg := s.formatLeaderboard(players)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPlayerStats(p *player.Player, dryRun bool) error {
	msg := s.formatPlayerStats(p)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPlayerNotFound(query string, dryRun bool) error {
	msg := s.formatPlayerNotFound(query)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatChallengeNoticeResponse formats a challenge notice for a slash command response.
func (s *Notifier) FormatChallengeNoticeResponse(receipt *pong.ChallengeReceipt, gifURL string) (any, error) {
	return s.formatChallengeNotice(receipt, gifURL), nil
}

// FormatMatchResultResponse formats a match result message for a slash command response.
func (s *Notifier) FormatMatchResultResponse(result *pong.MatchResult) (any, error) {
	return s.formatMatchResult(result), nil
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(players []*player.Player) (any, error) {
	return s.formatLeaderboard(players), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(p *player.Player) (any, error) {
	return s.formatPlayerStats(p), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string) (any, error) {
	return s.formatPlayerNotFound(query), nil
}

// formatChallengeNotice creates the Slack message for a freshly opened challenge using Block Kit.
func (s *Notifier) formatChallengeNotice(receipt *pong.ChallengeReceipt, gifURL string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏓 New challenge! 🏓", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", receipt.Notice, true, false), nil, nil))

	ch := receipt.Challenge
	matchupText := fmt.Sprintf("%s vs %s",
		strings.Join(ch.ChallengerTeam, " & "),
		strings.Join(ch.ChallengedTeam, " & "),
	)
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject("plain_text", matchupText, true, false),
	))

	if gifURL != "" {
		blocks = append(blocks, slack.NewImageBlock(gifURL, "duel", "", nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatMatchResult creates the Slack message for a resolved match using Block Kit.
func (s *Notifier) formatMatchResult(result *pong.MatchResult) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏓 Match finished! 🏓", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	winnerNames := make([]string, 0, len(result.Winners))
	for _, p := range result.Winners {
		winnerNames = append(winnerNames, p.Name)
	}
	resultText := fmt.Sprintf("%s won! 🏆", strings.Join(winnerNames, " & "))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), nil, nil))

	var ratingLines []string
	for _, p := range result.Winners {
		ratingLines = append(ratingLines, fmt.Sprintf("• %s: %.1f (%d-%d)", p.Name, p.Elo, p.Wins, p.Losses))
	}
	for _, p := range result.Losers {
		ratingLines = append(ratingLines, fmt.Sprintf("• %s: %.1f (%d-%d)", p.Name, p.Elo, p.Wins, p.Losses))
	}
	ratingsText := "Ratings:\n" + strings.Join(ratingLines, "\n")
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", ratingsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the ladder ranked by rating.
func (s *Notifier) formatLeaderboard(players []*player.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Ping Pong Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(players) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players registered yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	ranked := make([]*player.Player, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Elo > ranked[j].Elo })

	for i, p := range ranked {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Elo: %.1f | Win %%: %.2f%% (%d/%d)",
			rank,
			medal,
			p.Name,
			p.Elo,
			p.WinPercentage(),
			p.Wins,
			p.Wins+p.Losses,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatPlayerStats(p *player.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("🏆 Stats for %s 🏆", p.Name)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	playerText := fmt.Sprintf("> *Elo*: %.1f\n> *Win %%*: %.2f%% (%d/%d)\n> *Wins*: %d\n> *Losses*: %d",
		p.Elo,
		p.WinPercentage(),
		p.Wins,
		p.Wins+p.Losses,
		p.Wins,
		p.Losses,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player is not found.
func (s *Notifier) formatPlayerNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}
