package http

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mvoss/pongbot/internal/challenge"
	"github.com/mvoss/pongbot/internal/config"
	"github.com/mvoss/pongbot/internal/database"
	"github.com/mvoss/pongbot/internal/giphy"
	"github.com/mvoss/pongbot/internal/metrics"
	"github.com/mvoss/pongbot/internal/notifier"
	"github.com/mvoss/pongbot/internal/player"
	"github.com/mvoss/pongbot/internal/pong"
	"github.com/mvoss/pongbot/internal/pubsub"
	"github.com/mvoss/pongbot/internal/rating"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

const testSlackSigningSecret = "test-signing-secret"

// setupTestServer initializes a new server with a test database and mock collaborators.
func setupTestServer(t *testing.T, notif notifier.Notifier, slackSigningSecret string) (*Server, func()) {
	t.Helper()

	db, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	cfg := config.Config{Slack: config.SlackConfig{SigningSecret: slackSigningSecret}}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	usage := metrics.New(db)
	pubsubClient := pubsub.NewMock("TEST")
	pongSvc := pong.New(player.New(db), challenge.New(db), rating.New(0.94), giphy.NewMockClient(), pubsubClient, metricsSvc)

	server := NewServer(pongSvc, metricsSvc, metricsHandler, usage, cfg, notif, pubsubClient)

	teardown := func() {
		db.Close()
	}
	return server, teardown
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := strings.NewReader(form.Encode())
	req, err := http.NewRequest("POST", targetURL, body)
	require.NoError(t, err)

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	bodyBytes, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, string(bodyBytes))
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	signature := hex.EncodeToString(h.Sum(nil))

	req.Header.Set("X-Slack-Signature", "v0="+signature)

	return req
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestListPlayersHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), "")
	defer teardown()

	_, err := server.Pong.RegisterPlayer("ZhangJike")
	require.NoError(t, err)
	_, err = server.Pong.RegisterPlayer("DengYaping")
	require.NoError(t, err)

	req, err := http.NewRequest("GET", "/players", nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ZhangJike")
	assert.Contains(t, rr.Body.String(), "DengYaping")
}

func TestRegisterCommandHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), testSlackSigningSecret)
	defer teardown()

	form := url.Values{}
	form.Set("user_name", "ZhangJike")

	req := createSlackCommandRequest(t, "/slack/command/register", form, testSlackSigningSecret)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Welcome to the ladder, ZhangJike!")

	t.Run("duplicate registration surfaces as chat line", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/register", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "already registered")
	})
}

func TestCommandRejectsInvalidSignature(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), testSlackSigningSecret)
	defer teardown()

	form := url.Values{}
	form.Set("user_name", "ZhangJike")

	req := createSlackCommandRequest(t, "/slack/command/register", form, "wrong-secret")
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestChallengeCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatChallengeNoticeResponseFunc = func(receipt *pong.ChallengeReceipt, gifURL string) (any, error) {
		return slack.NewBlockMessage(
			slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", receipt.Notice, true, false), nil, nil),
		), nil
	}
	server, teardown := setupTestServer(t, mockNotifier, testSlackSigningSecret)
	defer teardown()

	_, err := server.Pong.RegisterPlayer("ZhangJike")
	require.NoError(t, err)
	_, err = server.Pong.RegisterPlayer("DengYaping")
	require.NoError(t, err)

	form := url.Values{}
	form.Set("user_name", "ZhangJike")
	form.Set("text", "DengYaping")

	req := createSlackCommandRequest(t, "/slack/command/challenge", form, testSlackSigningSecret)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "You have challenged DengYaping to a ping pong match!")
	assert.Len(t, mockNotifier.SendChallengeNoticeCalls, 1, "challenge should be announced in the channel")

	t.Run("second challenge is blocked", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/challenge", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "There's already an active challenge for ZhangJike")
	})

	t.Run("wrong argument count", func(t *testing.T) {
		badForm := url.Values{}
		badForm.Set("user_name", "ZhangJike")
		badForm.Set("text", "a b")
		req := createSlackCommandRequest(t, "/slack/command/challenge", badForm, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestResultCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatMatchResultResponseFunc = func(result *pong.MatchResult) (any, error) {
		winner := result.Winners[0]
		return slack.NewBlockMessage(
			slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", winner.Name+" won!", true, false), nil, nil),
		), nil
	}
	server, teardown := setupTestServer(t, mockNotifier, testSlackSigningSecret)
	defer teardown()

	_, err := server.Pong.RegisterPlayer("ZhangJike")
	require.NoError(t, err)
	_, err = server.Pong.RegisterPlayer("DengYaping")
	require.NoError(t, err)
	_, err = server.Pong.CreateSingleChallenge("ZhangJike", "DengYaping")
	require.NoError(t, err)

	form := url.Values{}
	form.Set("user_name", "ZhangJike")

	req := createSlackCommandRequest(t, "/slack/command/won", form, testSlackSigningSecret)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ZhangJike won!")
	assert.Len(t, mockNotifier.SendMatchResultCalls, 1)

	p, err := server.Pong.FindPlayer("ZhangJike")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Wins)
	assert.Nil(t, p.CurrentChallengeID)

	t.Run("no challenge left", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/won", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "no active challenge")
	})
}

func TestPlayerStatsCommandHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	mockNotifier.FormatPlayerStatsResponseFunc = func(p *player.Player) (any, error) {
		return slack.Message{}, nil
	}
	mockNotifier.FormatPlayerNotFoundResponseFunc = func(query string) (any, error) {
		return slack.Message{}, nil
	}
	server, teardown := setupTestServer(t, mockNotifier, testSlackSigningSecret)
	defer teardown()

	_, err := server.Pong.RegisterPlayer("ZhangJike")
	require.NoError(t, err)

	t.Run("known player", func(t *testing.T) {
		form := url.Values{}
		form.Set("user_name", "someone")
		form.Set("text", "ZhangJike")
		req := createSlackCommandRequest(t, "/slack/command/stats", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotNil(t, mockNotifier.LastPlayerStatsResponse)
	})

	t.Run("unknown player", func(t *testing.T) {
		form := url.Values{}
		form.Set("user_name", "someone")
		form.Set("text", "Nobody")
		req := createSlackCommandRequest(t, "/slack/command/stats", form, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotNil(t, mockNotifier.LastPlayerNotFoundResponse)
	})
}

func TestResetCommandHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), testSlackSigningSecret)
	defer teardown()

	_, err := server.Pong.RegisterPlayer("ZhangJike")
	require.NoError(t, err)

	form := url.Values{}
	form.Set("user_name", "ZhangJike")

	req := createSlackCommandRequest(t, "/slack/command/reset", form, testSlackSigningSecret)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Stats for ZhangJike have been reset.")

	p, err := server.Pong.FindPlayer("ZhangJike")
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Tau)
}

// setupMockServiceServer wires a server around a MockService so handler
// behavior can be tested without the full store stack.
func setupMockServiceServer(t *testing.T, notif notifier.Notifier) (*Server, *pong.MockService, func()) {
	t.Helper()

	db, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	cfg := config.Config{}
	reg := prometheus.NewRegistry()
	mockSvc := pong.NewMockService()
	server := NewServer(mockSvc, metrics.NewService(reg), metrics.NewMetricsHandler(reg), metrics.New(db), cfg, notif, pubsub.NewMock("TEST"))

	return server, mockSvc, func() { db.Close() }
}

// createPushRequest wraps a msgpack-encoded event the way a Pub/Sub push
// subscription delivers it: base64 payload inside a JSON envelope.
func createPushRequest(t *testing.T, targetURL string, event any) *http.Request {
	t.Helper()

	raw, err := msgpack.Marshal(event)
	require.NoError(t, err)

	envelope := map[string]any{
		"subscription": "projects/test/subscriptions/test",
		"message": map[string]any{
			"data": base64.StdEncoding.EncodeToString(raw),
		},
	}
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", targetURL, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAcceptAndDeclineCommandHandlers(t *testing.T) {
	server, mockSvc, teardown := setupMockServiceServer(t, notifier.NewMock())
	defer teardown()

	form := url.Values{}
	form.Set("user_name", "ZhangJike")

	t.Run("accept delegates to the service", func(t *testing.T) {
		mockSvc.AcceptChallengeFunc = func(name string) (*challenge.Challenge, error) {
			return &challenge.Challenge{ID: "c1", State: challenge.StateAccepted}, nil
		}

		req := createSlackCommandRequest(t, "/slack/command/accept", form, "")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Challenge accepted. Game on!")
		require.Len(t, mockSvc.AcceptChallengeCalls, 1)
		assert.Equal(t, "ZhangJike", mockSvc.AcceptChallengeCalls[0])
	})

	t.Run("decline delegates to the service", func(t *testing.T) {
		mockSvc.DeclineChallengeFunc = func(name string) (*challenge.Challenge, error) {
			return &challenge.Challenge{ID: "c1", State: challenge.StateDeclined}, nil
		}

		req := createSlackCommandRequest(t, "/slack/command/decline", form, "")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Challenge declined.")
		require.Len(t, mockSvc.DeclineChallengeCalls, 1)
		assert.Equal(t, "ZhangJike", mockSvc.DeclineChallengeCalls[0])
	})

	t.Run("responded challenge surfaces as chat line", func(t *testing.T) {
		mockSvc.AcceptChallengeFunc = func(name string) (*challenge.Challenge, error) {
			return nil, pong.ErrChallengeNotProposed
		}

		req := createSlackCommandRequest(t, "/slack/command/accept", form, "")
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "not awaiting a response")
	})
}

func TestMatchResolvedPushHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, mockNotifier, "")
	defer teardown()

	mockPubsub := server.pubsub.(*pubsub.MockPubSubClient)
	mockPubsub.ProcessMessageFunc = func(data []byte, returnValue any) error {
		return msgpack.Unmarshal(data, returnValue)
	}

	_, err := server.Pong.RegisterPlayer("ZhangJike")
	require.NoError(t, err)
	_, err = server.Pong.RegisterPlayer("DengYaping")
	require.NoError(t, err)

	event := pubsub.MatchResolvedEvent{
		ChallengeID: "c1",
		Winners:     []string{"ZhangJike"},
		Losers:      []string{"DengYaping"},
	}
	req := createPushRequest(t, "/pubsub/match-resolved", event)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
	require.Len(t, mockNotifier.SendLeaderboardCalls, 1, "leaderboard should be announced in the channel")
	assert.Len(t, mockNotifier.SendLeaderboardCalls[0], 2)
	require.Len(t, mockPubsub.ProcessMessageCalls, 1)

	t.Run("invalid envelope", func(t *testing.T) {
		req, err := http.NewRequest("POST", "/pubsub/match-resolved", strings.NewReader("not json"))
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid base64 payload", func(t *testing.T) {
		body := `{"subscription":"s","message":{"data":"%%%not-base64%%%"}}`
		req, err := http.NewRequest("POST", "/pubsub/match-resolved", strings.NewReader(body))
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestPlayerResetPushHandler(t *testing.T) {
	mockNotifier := notifier.NewMock()
	server, teardown := setupTestServer(t, mockNotifier, "")
	defer teardown()

	mockPubsub := server.pubsub.(*pubsub.MockPubSubClient)
	mockPubsub.ProcessMessageFunc = func(data []byte, returnValue any) error {
		return msgpack.Unmarshal(data, returnValue)
	}

	_, err := server.Pong.RegisterPlayer("ZhangJike")
	require.NoError(t, err)

	req := createPushRequest(t, "/pubsub/player-reset", pubsub.PlayerResetEvent{Name: "ZhangJike"})
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, mockNotifier.SendPlayerStatsCalls, 1)
	assert.Equal(t, "ZhangJike", mockNotifier.SendPlayerStatsCalls[0].Player.Name)

	t.Run("unknown player", func(t *testing.T) {
		req := createPushRequest(t, "/pubsub/player-reset", pubsub.PlayerResetEvent{Name: "Nobody"})
		rr := httptest.NewRecorder()
		server.Router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mockNotifier.SendPlayerNotFoundCalls, 1)
		assert.Equal(t, "Nobody", mockNotifier.SendPlayerNotFoundCalls[0])
	})
}

func TestUsageHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock(), testSlackSigningSecret)
	defer teardown()

	form := url.Values{}
	form.Set("user_name", "ZhangJike")
	req := createSlackCommandRequest(t, "/slack/command/register", form, testSlackSigningSecret)
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req, err := http.NewRequest("GET", "/usage", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"register":1`)
}
