package pong

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mvoss/pongbot/internal/challenge"
	"github.com/mvoss/pongbot/internal/giphy"
	"github.com/mvoss/pongbot/internal/metrics"
	"github.com/mvoss/pongbot/internal/player"
	"github.com/mvoss/pongbot/internal/pubsub"
	"github.com/mvoss/pongbot/internal/rating"
)

// New creates a new Service.
func New(players player.Store, challenges challenge.Store, engine *rating.Engine, gifs giphy.Client, pubsubClient pubsub.PubSubClient, metrics metrics.Metrics) Service {
	return &service{
		players:    players,
		challenges: challenges,
		rating:     engine,
		gifs:       gifs,
		pubsub:     pubsubClient,
		metrics:    metrics,
	}
}

func (s *service) RegisterPlayer(name string) (*player.Player, error) {
	return s.players.Create(name)
}

func (s *service) FindPlayer(name string) (*player.Player, error) {
	return s.players.Find(name)
}

func (s *service) GetEveryone() ([]*player.Player, error) {
	players, err := s.players.All()
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		log.Debug("Player", "name", p.Name, "wins", p.Wins, "losses", p.Losses, "elo", p.Elo)
	}
	return players, nil
}

func (s *service) UpdateWins(name string) (*player.Player, error) {
	p, err := s.players.Find(name)
	if err != nil {
		return nil, err
	}
	p.Wins++
	if err := s.players.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UpdateLosses(name string) (*player.Player, error) {
	p, err := s.players.Find(name)
	if err != nil {
		return nil, err
	}
	p.Losses++
	if err := s.players.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Reset wipes the player's record but sets tau to 1 rather than the
// creation default of 0, so the next few results move the rating hard.
func (s *service) Reset(name string) (*player.Player, error) {
	p, err := s.players.Find(name)
	if err != nil {
		return nil, err
	}
	p.Wins = 0
	p.Losses = 0
	p.Elo = 0
	p.Tau = 1
	if err := s.players.Save(p); err != nil {
		return nil, err
	}
	if err := s.pubsub.SendMessage(pubsub.EventPlayerReset, pubsub.PlayerResetEvent{Name: p.Name}); err != nil {
		log.Error("Failed to publish player reset", "error", err, "name", p.Name)
	}
	log.Info("Reset player", "name", p.Name)
	return p, nil
}

func (s *service) CheckChallenge(name string) (*challenge.Challenge, error) {
	return s.activeChallenge(name)
}

func (s *service) SetChallenge(name, challengeID string) error {
	return s.players.AssignChallenge(challengeID, name)
}

func (s *service) RemoveChallenge(name string) error {
	if _, err := s.players.Find(name); err != nil {
		return err
	}
	return s.players.ClearChallenge(name)
}

func (s *service) CreateSingleChallenge(challengerName, challengedName string) (*ChallengeReceipt, error) {
	ch, err := s.createChallenge(challenge.TypeSingle, []string{challengerName}, []string{challengedName})
	if err != nil {
		return nil, err
	}
	return &ChallengeReceipt{
		Challenge: ch,
		Notice:    fmt.Sprintf("You have challenged %s to a ping pong match!", challengedName),
	}, nil
}

func (s *service) CreateDoubleChallenge(c1, c2, d1, d2 string) (*ChallengeReceipt, error) {
	ch, err := s.createChallenge(challenge.TypeDouble, []string{c1, c2}, []string{d1, d2})
	if err != nil {
		return nil, err
	}
	return &ChallengeReceipt{
		Challenge: ch,
		Notice:    fmt.Sprintf("You and %s have challenged %s and %s to a ping pong match!", c2, d1, d2),
	}, nil
}

// createChallenge validates the participants, persists the challenge and
// points every participant at it. Name resolution happens first, in the
// order the names were given, so an unknown name always surfaces before
// any other validation. If the assignment leg fails the challenge record
// is deleted again, so no player ever references a challenge that did not
// fully materialize.
func (s *service) createChallenge(challengeType challenge.Type, challengerNames, challengedNames []string) (*challenge.Challenge, error) {
	names := make([]string, 0, len(challengerNames)+len(challengedNames))
	names = append(names, challengerNames...)
	names = append(names, challengedNames...)

	resolved := make([]*player.Player, 0, len(names))
	for _, name := range names {
		p, err := s.players.Find(name)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, p)
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return nil, ErrDuplicateParticipant
		}
		seen[name] = struct{}{}
	}

	// Only the initiating challenger gates creation.
	if resolved[0].HasActiveChallenge() {
		return nil, &ActiveChallengeError{Name: resolved[0].Name}
	}

	ch := &challenge.Challenge{
		ID:             uuid.NewString(),
		Type:           challengeType,
		State:          challenge.StateProposed,
		Date:           time.Now(),
		ChallengerTeam: challengerNames,
		ChallengedTeam: challengedNames,
	}
	if err := s.challenges.Create(ch); err != nil {
		return nil, err
	}
	if err := s.players.AssignChallenge(ch.ID, names...); err != nil {
		if delErr := s.challenges.Delete(ch.ID); delErr != nil {
			log.Error("Failed to remove orphaned challenge after assignment failure", "error", delErr, "challengeID", ch.ID)
		}
		return nil, err
	}

	s.metrics.IncChallengesCreated()
	if err := s.pubsub.SendMessage(pubsub.EventChallengeCreated, pubsub.ChallengeCreatedEvent{
		ChallengeID: ch.ID,
		Type:        string(challengeType),
		Challengers: challengerNames,
		Challenged:  challengedNames,
	}); err != nil {
		log.Error("Failed to publish challenge creation", "error", err, "challengeID", ch.ID)
	}
	log.Info("Created challenge", "challengeID", ch.ID, "type", challengeType, "players", names)
	return ch, nil
}

func (s *service) AcceptChallenge(name string) (*challenge.Challenge, error) {
	ch, err := s.activeChallenge(name)
	if err != nil {
		return nil, err
	}
	if ch.State != challenge.StateProposed {
		return nil, ErrChallengeNotProposed
	}
	ch.State = challenge.StateAccepted
	if err := s.challenges.Save(ch); err != nil {
		return nil, err
	}
	log.Info("Challenge accepted", "challengeID", ch.ID, "by", name)
	return ch, nil
}

func (s *service) DeclineChallenge(name string) (*challenge.Challenge, error) {
	ch, err := s.activeChallenge(name)
	if err != nil {
		return nil, err
	}
	if ch.State != challenge.StateProposed {
		return nil, ErrChallengeNotProposed
	}
	// Free the participants before marking the challenge Declined: if the
	// state save fails the challenge stays Proposed with no references,
	// which is recoverable, rather than Declined with dangling ones.
	if err := s.players.ClearChallenge(ch.Players()...); err != nil {
		return nil, err
	}
	ch.State = challenge.StateDeclined
	if err := s.challenges.Save(ch); err != nil {
		return nil, err
	}
	log.Info("Challenge declined", "challengeID", ch.ID, "by", name)
	return ch, nil
}

func (s *service) Win(names ...string) (*MatchResult, error) {
	return s.resolve(true, names)
}

func (s *service) Lose(names ...string) (*MatchResult, error) {
	return s.resolve(false, names)
}

// resolve settles the challenge the reporting players are tied up in.
// reportedWon says which side of the result the reporters are on.
func (s *service) resolve(reportedWon bool, names []string) (*MatchResult, error) {
	if len(names) == 0 {
		return nil, ErrNoActiveChallenge
	}
	for _, name := range names {
		if _, err := s.players.Find(name); err != nil {
			return nil, err
		}
	}

	ch, err := s.activeChallenge(names[0])
	if err != nil {
		return nil, err
	}
	if ch.State != challenge.StateProposed && ch.State != challenge.StateAccepted {
		return nil, ErrChallengeNotOpen
	}

	// Every participant must still point back at this challenge, or the
	// records have drifted and the result cannot be trusted.
	participants := make(map[string]*player.Player, len(ch.Players()))
	for _, name := range ch.Players() {
		p, err := s.players.Find(name)
		if err != nil {
			return nil, err
		}
		if p.CurrentChallengeID == nil || *p.CurrentChallengeID != ch.ID {
			return nil, ErrChallengeMismatch
		}
		participants[name] = p
	}

	reportedSide, otherSide, err := splitSides(ch, names)
	if err != nil {
		return nil, err
	}
	winnerNames, loserNames := reportedSide, otherSide
	if !reportedWon {
		winnerNames, loserNames = otherSide, reportedSide
	}
	winners := pick(participants, winnerNames)
	losers := pick(participants, loserNames)

	winnerRating := s.rating.TeamRating(elos(winners)...)
	loserRating := s.rating.TeamRating(elos(losers)...)

	for _, p := range winners {
		p.Elo += s.changeFor(ch.Type, winnerRating, loserRating, p.Tau, 1)
		p.Tau = s.rating.DecayTau(p.Tau)
		p.Wins++
		p.CurrentChallengeID = nil
	}
	for _, p := range losers {
		p.Elo += s.changeFor(ch.Type, loserRating, winnerRating, p.Tau, 0)
		p.Tau = s.rating.DecayTau(p.Tau)
		p.Losses++
		p.CurrentChallengeID = nil
	}

	updated := make([]*player.Player, 0, len(winners)+len(losers))
	updated = append(updated, winners...)
	updated = append(updated, losers...)
	if err := s.players.SaveAll(updated...); err != nil {
		return nil, err
	}

	ch.State = challenge.StateCompleted
	if err := s.challenges.Save(ch); err != nil {
		return nil, err
	}

	s.metrics.IncMatchesResolved()
	if err := s.pubsub.SendMessage(pubsub.EventMatchResolved, pubsub.MatchResolvedEvent{
		ChallengeID: ch.ID,
		Winners:     winnerNames,
		Losers:      loserNames,
	}); err != nil {
		log.Error("Failed to publish match resolution", "error", err, "challengeID", ch.ID)
	}
	log.Info("Resolved challenge", "challengeID", ch.ID, "winners", winnerNames, "losers", loserNames)

	return &MatchResult{Challenge: ch, Winners: winners, Losers: losers}, nil
}

func (s *service) FindDoublesPlayers(n1, n2, n3, n4 string) ([]*player.Player, error) {
	players := make([]*player.Player, 0, 4)
	for _, name := range []string{n1, n2, n3, n4} {
		p, err := s.players.Find(name)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func (s *service) DuelGif() (string, error) {
	return s.gifs.DuelGif()
}

// activeChallenge resolves the player's current challenge record.
func (s *service) activeChallenge(name string) (*challenge.Challenge, error) {
	p, err := s.players.Find(name)
	if err != nil {
		return nil, err
	}
	if !p.HasActiveChallenge() {
		return nil, ErrNoActiveChallenge
	}
	return s.challenges.Get(*p.CurrentChallengeID)
}

func (s *service) changeFor(challengeType challenge.Type, ratingA, ratingB, tau, outcome float64) float64 {
	if challengeType == challenge.TypeDouble {
		return s.rating.DoublesChange(ratingA, ratingB, tau, outcome)
	}
	return s.rating.SinglesChange(ratingA, ratingB, tau, outcome)
}

// splitSides maps the reported names onto one side of the challenge. The
// names must all belong to the same side; any subset of a side identifies
// it.
func splitSides(ch *challenge.Challenge, reported []string) (reportedSide, otherSide []string, err error) {
	if onSide(ch.ChallengerTeam, reported) {
		return ch.ChallengerTeam, ch.ChallengedTeam, nil
	}
	if onSide(ch.ChallengedTeam, reported) {
		return ch.ChallengedTeam, ch.ChallengerTeam, nil
	}
	return nil, nil, ErrUnknownTeam
}

func onSide(team, reported []string) bool {
	for _, name := range reported {
		found := false
		for _, member := range team {
			if member == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func pick(participants map[string]*player.Player, names []string) []*player.Player {
	players := make([]*player.Player, 0, len(names))
	for _, name := range names {
		players = append(players, participants[name])
	}
	return players
}

func elos(players []*player.Player) []float64 {
	values := make([]float64, 0, len(players))
	for _, p := range players {
		values = append(values, p.Elo)
	}
	return values
}
