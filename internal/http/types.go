package http

import (
	"net/http"

	"github.com/mvoss/pongbot/internal/config"
	"github.com/mvoss/pongbot/internal/metrics"
	"github.com/mvoss/pongbot/internal/notifier"
	"github.com/mvoss/pongbot/internal/pong"
	"github.com/mvoss/pongbot/internal/pubsub"
)

type Server struct {
	Pong           pong.Service
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Usage          metrics.MetricsStore
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
