package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mvoss/pongbot/internal/player"
	"github.com/mvoss/pongbot/internal/pong"
	"github.com/mvoss/pongbot/internal/pubsub"
	"github.com/slack-go/slack"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Pong.GetEveryone()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(players); err != nil {
			log.Error("Failed to write response", "error", err)
		}
	}
}

func (s *Server) UsageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usage, err := s.Usage.GetAll()
		if err != nil {
			http.Error(w, "Failed to get usage counters", http.StatusInternalServerError)
			log.Error("Failed to get usage counters", "error", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(usage); err != nil {
			log.Error("Failed to encode usage counters to JSON", "error", err)
		}
	}
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// respondWithText wraps a single line of text in a Slack message response.
func respondWithText(w http.ResponseWriter, text string) {
	respondWithSlackMsg(w, slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil),
	))
}

// respondCommandError renders expected domain failures as a single
// chat-visible line and everything else as a plain 500.
func respondCommandError(w http.ResponseWriter, err error) {
	var notFound *player.NotFoundError
	var active *pong.ActiveChallengeError
	switch {
	case errors.As(err, &notFound),
		errors.As(err, &active),
		errors.Is(err, player.ErrDuplicatePlayer),
		errors.Is(err, pong.ErrNoActiveChallenge),
		errors.Is(err, pong.ErrChallengeNotProposed),
		errors.Is(err, pong.ErrChallengeNotOpen),
		errors.Is(err, pong.ErrUnknownTeam),
		errors.Is(err, pong.ErrDuplicateParticipant),
		errors.Is(err, pong.ErrChallengeMismatch):
		respondWithText(w, err.Error())
	default:
		log.Error("Command failed", "error", err)
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
	}
}

// commandName extracts the acting player's name from the slash command
// form, letting an explicit text argument override the invoking user.
func commandName(r *http.Request) string {
	if text := strings.TrimSpace(r.FormValue("text")); text != "" {
		return text
	}
	return r.FormValue("user_name")
}

// RegisterCommandHandler returns a handler for the /register Slack command.
func (s *Server) RegisterCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		name := commandName(r)
		if name == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		if _, err := s.Pong.RegisterPlayer(name); err != nil {
			respondCommandError(w, err)
			return
		}
		respondWithText(w, fmt.Sprintf("Welcome to the ladder, %s!", name))
	}
}

// ChallengeCommandHandler returns a handler for the /challenge Slack command.
// One name in the text opens a singles challenge against that player; three
// names open a doubles challenge with the first as the invoker's partner.
func (s *Server) ChallengeCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		challenger := r.FormValue("user_name")
		names := strings.Fields(r.FormValue("text"))

		var receipt *pong.ChallengeReceipt
		var err error
		switch len(names) {
		case 1:
			receipt, err = s.Pong.CreateSingleChallenge(challenger, names[0])
		case 3:
			receipt, err = s.Pong.CreateDoubleChallenge(challenger, names[0], names[1], names[2])
		default:
			http.Error(w, "Usage: /challenge <opponent> or /challenge <partner> <opponent1> <opponent2>", http.StatusBadRequest)
			return
		}
		if err != nil {
			respondCommandError(w, err)
			return
		}

		gifURL, err := s.Pong.DuelGif()
		if err != nil {
			log.Warn("Failed to fetch duel gif", "error", err)
		}

		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendChallengeNotice(receipt, gifURL, isDryRun); err != nil {
			log.Error("Failed to announce challenge", "error", err, "challengeID", receipt.Challenge.ID)
		}

		msg, err := s.Notifier.FormatChallengeNoticeResponse(receipt, gifURL)
		if err != nil {
			http.Error(w, "Failed to format challenge notice", http.StatusInternalServerError)
			log.Error("Failed to format challenge notice", "error", err)
			return
		}
		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// AcceptCommandHandler returns a handler for the /accept Slack command.
func (s *Server) AcceptCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		if _, err := s.Pong.AcceptChallenge(r.FormValue("user_name")); err != nil {
			respondCommandError(w, err)
			return
		}
		respondWithText(w, "Challenge accepted. Game on!")
	}
}

// DeclineCommandHandler returns a handler for the /decline Slack command.
func (s *Server) DeclineCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		if _, err := s.Pong.DeclineChallenge(r.FormValue("user_name")); err != nil {
			respondCommandError(w, err)
			return
		}
		respondWithText(w, "Challenge declined.")
	}
}

// ResultCommandHandler returns a handler for the /won and /lost Slack
// commands. The invoker reports for their side; text may name doubles
// teammates.
func (s *Server) ResultCommandHandler(won bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		names := append([]string{r.FormValue("user_name")}, strings.Fields(r.FormValue("text"))...)

		var result *pong.MatchResult
		var err error
		if won {
			result, err = s.Pong.Win(names...)
		} else {
			result, err = s.Pong.Lose(names...)
		}
		if err != nil {
			respondCommandError(w, err)
			return
		}

		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendMatchResult(result, isDryRun); err != nil {
			log.Error("Failed to announce match result", "error", err, "challengeID", result.Challenge.ID)
		}

		msg, err := s.Notifier.FormatMatchResultResponse(result)
		if err != nil {
			http.Error(w, "Failed to format match result", http.StatusInternalServerError)
			log.Error("Failed to format match result", "error", err)
			return
		}
		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Pong.GetEveryone()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players", "error", err)
			return
		}

		msg, err := s.Notifier.FormatLeaderboardResponse(players)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}
		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// PlayerStatsCommandHandler returns a handler for the /stats Slack command.
func (s *Server) PlayerStatsCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		name := commandName(r)
		log.Info("Received player stats command", "player", name)

		p, err := s.Pong.FindPlayer(name)
		var msg any
		if err != nil {
			log.Warn("Could not find player", "player", name, "error", err)
			msg, err = s.Notifier.FormatPlayerNotFoundResponse(name)
		} else {
			msg, err = s.Notifier.FormatPlayerStatsResponse(p)
		}
		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}
		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}

// decodePushPayload unwraps a Pub/Sub push delivery: the envelope is JSON
// with a base64-encoded message body carrying the raw MessagePack payload.
func decodePushPayload(r *http.Request) ([]byte, error) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	var pushMsg struct {
		Subscription string `json:"subscription"`
		Message      struct {
			Data string `json:"data"` // base64-encoded message payload
		} `json:"message"`
	}
	if err := json.Unmarshal(bodyBytes, &pushMsg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wrapper JSON: %w", err)
	}
	rawData, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 data: %w", err)
	}
	return rawData, nil
}

// MatchResolvedPushHandler consumes match-resolved push deliveries and
// announces the refreshed leaderboard in the channel.
func (s *Server) MatchResolvedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := decodePushPayload(r)
		if err != nil {
			log.Error("Failed to decode push delivery", "error", err)
			http.Error(w, "Invalid push payload", http.StatusBadRequest)
			return
		}

		var event pubsub.MatchResolvedEvent
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode match resolved event", "error", err)
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}
		log.Debug("Received match resolved event", "challengeID", event.ChallengeID, "winners", event.Winners)

		players, err := s.Pong.GetEveryone()
		if err != nil {
			log.Error("Failed to get players", "error", err)
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			return
		}

		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendLeaderboard(players, isDryRun); err != nil {
			log.Error("Failed to announce leaderboard", "error", err, "challengeID", event.ChallengeID)
			http.Error(w, "Failed to announce leaderboard", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// PlayerResetPushHandler consumes player-reset push deliveries and posts
// the player's wiped record in the channel.
func (s *Server) PlayerResetPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawData, err := decodePushPayload(r)
		if err != nil {
			log.Error("Failed to decode push delivery", "error", err)
			http.Error(w, "Invalid push payload", http.StatusBadRequest)
			return
		}

		var event pubsub.PlayerResetEvent
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode player reset event", "error", err)
			http.Error(w, "Invalid event payload", http.StatusBadRequest)
			return
		}
		log.Debug("Received player reset event", "name", event.Name)

		isDryRun := isDryRunFromContext(r)
		p, err := s.Pong.FindPlayer(event.Name)
		if err != nil {
			log.Warn("Reset event for unknown player", "name", event.Name, "error", err)
			if err := s.Notifier.SendPlayerNotFound(event.Name, isDryRun); err != nil {
				log.Error("Failed to announce unknown player", "error", err, "name", event.Name)
			}
			w.Write([]byte("OK"))
			return
		}
		if err := s.Notifier.SendPlayerStats(p, isDryRun); err != nil {
			log.Error("Failed to announce player stats", "error", err, "name", event.Name)
			http.Error(w, "Failed to announce player stats", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// ResetCommandHandler returns a handler for the /reset Slack command.
func (s *Server) ResetCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		name := commandName(r)
		if _, err := s.Pong.Reset(name); err != nil {
			respondCommandError(w, err)
			return
		}
		respondWithText(w, fmt.Sprintf("Stats for %s have been reset.", name))
	}
}
