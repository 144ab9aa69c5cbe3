package challenge

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new challenge Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) Create(c *Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	challengersJSON, err := json.Marshal(c.ChallengerTeam)
	if err != nil {
		return fmt.Errorf("failed to marshal challenger team: %w", err)
	}
	challengedJSON, err := json.Marshal(c.ChallengedTeam)
	if err != nil {
		return fmt.Errorf("failed to marshal challenged team: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO challenges (id, type, state, created_at, challengers_json, challenged_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.ID, string(c.Type), string(c.State), c.Date.Unix(), challengersJSON, challengedJSON)
	if err != nil {
		return fmt.Errorf("failed to create challenge: %w", err)
	}

	log.Info("Created challenge", "id", c.ID, "type", c.Type)
	return nil
}

func (s *store) Get(id string) (*Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, type, state, created_at, challengers_json, challenged_json
		FROM challenges WHERE id = ?
	`, id)

	var c Challenge
	var typ, state string
	var createdAt int64
	var challengersJSON, challengedJSON []byte

	err := row.Scan(&c.ID, &typ, &state, &createdAt, &challengersJSON, &challengedJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to get challenge: %w", err)
	}

	c.Type = Type(typ)
	c.State = State(state)
	c.Date = time.Unix(createdAt, 0)
	if err := json.Unmarshal(challengersJSON, &c.ChallengerTeam); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenger team: %w", err)
	}
	if err := json.Unmarshal(challengedJSON, &c.ChallengedTeam); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenged team: %w", err)
	}
	return &c, nil
}

func (s *store) Save(c *Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE challenges SET state = ? WHERE id = ?", string(c.State), c.ID)
	if err != nil {
		return fmt.Errorf("failed to save challenge %s: %w", c.ID, err)
	}
	log.Debug("Saved challenge", "id", c.ID, "state", c.State)
	return nil
}

func (s *store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM challenges WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete challenge %s: %w", id, err)
	}
	return nil
}
