package http

import (
	"net/http"

	"github.com/mvoss/pongbot/internal/config"
	"github.com/mvoss/pongbot/internal/metrics"
	"github.com/mvoss/pongbot/internal/notifier"
	"github.com/mvoss/pongbot/internal/pong"
	"github.com/mvoss/pongbot/internal/pubsub"
)

func NewServer(pongSvc pong.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, usage metrics.MetricsStore, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Pong:           pongSvc,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Usage:          usage,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Slash command routes additionally verify the Slack request signature.
	verify := slackVerifyMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/usage", Chain(s.UsageHandler(), paramsMiddleware))
	s.Router.Handle("/slack/command/register", Chain(s.instrument("register", s.RegisterCommandHandler()), paramsMiddleware, verify))
	s.Router.Handle("/slack/command/challenge", Chain(s.instrument("challenge", s.ChallengeCommandHandler()), paramsMiddleware, verify))
	s.Router.Handle("/slack/command/accept", Chain(s.instrument("accept", s.AcceptCommandHandler()), paramsMiddleware, verify))
	s.Router.Handle("/slack/command/decline", Chain(s.instrument("decline", s.DeclineCommandHandler()), paramsMiddleware, verify))
	s.Router.Handle("/slack/command/won", Chain(s.instrument("won", s.ResultCommandHandler(true)), paramsMiddleware, verify))
	s.Router.Handle("/slack/command/lost", Chain(s.instrument("lost", s.ResultCommandHandler(false)), paramsMiddleware, verify))
	s.Router.Handle("/slack/command/leaderboard", Chain(s.instrument("leaderboard", s.LeaderboardCommandHandler()), paramsMiddleware, verify))
	s.Router.Handle("/slack/command/stats", Chain(s.instrument("stats", s.PlayerStatsCommandHandler()), paramsMiddleware, verify))
	s.Router.Handle("/slack/command/reset", Chain(s.instrument("reset", s.ResetCommandHandler()), paramsMiddleware, verify))
	s.Router.Handle("/pubsub/match-resolved", Chain(s.MatchResolvedPushHandler(), paramsMiddleware))
	s.Router.Handle("/pubsub/player-reset", Chain(s.PlayerResetPushHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
