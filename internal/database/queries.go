package database

import (
	"fmt"
	"strconv"
	"time"
)

// Round represents a finished round record
type Round struct {
	ID       string
	Model    string
	Start    uint64
	End      uint64
	Guess    uint64
	Drawn    uint64
	Outcome  string
	Reply    string
	Attempts int
	PlayedAt time.Time
}

// Stats summarises the rounds played so far
type Stats struct {
	Played int
	Won    int
}

// InsertRound adds a finished round to the database
func (db *DB) InsertRound(r *Round) error {
	query := `
		INSERT INTO rounds (
			id, model, range_start, range_end, guess, drawn,
			outcome, reply, attempts, played_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.conn.Exec(query,
		r.ID, r.Model, formatUint(r.Start), formatUint(r.End), formatUint(r.Guess), formatUint(r.Drawn),
		r.Outcome, r.Reply, r.Attempts, r.PlayedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert round: %w", err)
	}
	return nil
}

// ListRounds retrieves the most recent rounds, newest first. A limit of zero
// or less returns every round.
func (db *DB) ListRounds(limit int) ([]*Round, error) {
	querySQL := `
		SELECT id, model, range_start, range_end, guess, drawn,
		       outcome, reply, attempts, played_at
		FROM rounds
		ORDER BY played_at DESC, rowid DESC
	`
	args := []interface{}{}

	if limit > 0 {
		querySQL += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.Query(querySQL, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}
	defer rows.Close()

	rounds := []*Round{}
	for rows.Next() {
		var r Round
		var start, end, guess, drawn string
		err := rows.Scan(
			&r.ID, &r.Model, &start, &end, &guess, &drawn,
			&r.Outcome, &r.Reply, &r.Attempts, &r.PlayedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan round: %w", err)
		}
		if err := parseUints([]string{start, end, guess, drawn}, &r.Start, &r.End, &r.Guess, &r.Drawn); err != nil {
			return nil, fmt.Errorf("failed to decode round %s: %w", r.ID, err)
		}
		rounds = append(rounds, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rounds: %w", err)
	}

	return rounds, nil
}

// RoundStats counts played and won rounds
func (db *DB) RoundStats(wonOutcome string) (Stats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0)
		FROM rounds
	`

	var s Stats
	if err := db.conn.QueryRow(query, wonOutcome).Scan(&s.Played, &s.Won); err != nil {
		return Stats{}, fmt.Errorf("failed to count rounds: %w", err)
	}
	return s, nil
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func parseUints(texts []string, dst ...*uint64) error {
	for i, text := range texts {
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return err
		}
		*dst[i] = v
	}
	return nil
}
