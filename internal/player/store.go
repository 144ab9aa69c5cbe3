package player

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new player Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) Create(name string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A zero rows-affected insert means the name was already taken.
	res, err := s.db.Exec(`
		INSERT INTO players (name, wins, losses, elo, tau)
		VALUES (?, 0, 0, 0, 0)
		ON CONFLICT(name) DO NOTHING
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check player insert: %w", err)
	}
	if affected == 0 {
		return nil, ErrDuplicatePlayer
	}

	log.Info("Registered player", "name", name)
	return &Player{Name: name}, nil
}

func (s *store) Find(name string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT name, wins, losses, elo, tau, current_challenge_id
		FROM players WHERE name = ?
	`, name)

	p, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Name: name}
		}
		return nil, fmt.Errorf("failed to find player: %w", err)
	}
	return p, nil
}

func (s *store) Save(p *Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		UPDATE players
		SET wins = ?, losses = ?, elo = ?, tau = ?, current_challenge_id = ?
		WHERE name = ?
	`, p.Wins, p.Losses, p.Elo, p.Tau, challengeRef(p), p.Name)
	if err != nil {
		return fmt.Errorf("failed to save player %s: %w", p.Name, err)
	}
	return nil
}

func (s *store) All() ([]*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT name, wins, losses, elo, tau, current_challenge_id
		FROM players ORDER BY name
	`)
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []*Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, nil
}

func (s *store) AssignChallenge(challengeID string, names ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range names {
		res, err := tx.Exec("UPDATE players SET current_challenge_id = ? WHERE name = ?", challengeID, name)
		if err != nil {
			return fmt.Errorf("failed to assign challenge to %s: %w", name, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check challenge assignment for %s: %w", name, err)
		}
		if affected == 0 {
			return &NotFoundError{Name: name}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit challenge assignment: %w", err)
	}
	log.Info("Assigned challenge to players", "challengeID", challengeID, "players", names)
	return nil
}

func (s *store) ClearChallenge(names ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range names {
		if _, err := tx.Exec("UPDATE players SET current_challenge_id = NULL WHERE name = ?", name); err != nil {
			return fmt.Errorf("failed to clear challenge for %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit challenge clear: %w", err)
	}
	return nil
}

func (s *store) SaveAll(players ...*Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range players {
		_, err := tx.Exec(`
			UPDATE players
			SET wins = ?, losses = ?, elo = ?, tau = ?, current_challenge_id = ?
			WHERE name = ?
		`, p.Wins, p.Losses, p.Elo, p.Tau, challengeRef(p), p.Name)
		if err != nil {
			return fmt.Errorf("failed to save player %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit player updates: %w", err)
	}
	return nil
}

// scanPlayer is a helper to scan a single player row.
func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	var ref sql.NullString
	err := scanner.Scan(&p.Name, &p.Wins, &p.Losses, &p.Elo, &p.Tau, &ref)
	if err != nil {
		return nil, err
	}
	if ref.Valid {
		p.CurrentChallengeID = &ref.String
	}
	return &p, nil
}

func challengeRef(p *Player) any {
	if p.CurrentChallengeID == nil {
		return nil
	}
	return *p.CurrentChallengeID
}
