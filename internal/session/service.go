package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kevinzwang/randy/internal/database"
)

// Record is one finished round as kept in the ledger.
type Record struct {
	ID       string
	Model    string
	Start    uint64
	End      uint64
	Guess    uint64
	Drawn    uint64
	Outcome  Outcome
	Reply    string
	Attempts int
	PlayedAt time.Time
}

// Tally counts the rounds recorded in this run.
type Tally struct {
	Played int
	Won    int
}

// Service keeps the per-run ledger of finished rounds
type Service struct {
	db  *database.DB
	now func() time.Time
}

// NewService creates a new ledger service
func NewService(db *database.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// RecordRound stores a finished round, assigning its ID and timestamp.
func (s *Service) RecordRound(rec Record) (*Record, error) {
	rec.ID = uuid.New().String()
	rec.PlayedAt = s.now()

	if err := s.db.InsertRound(rec.toDBRound()); err != nil {
		return nil, fmt.Errorf("failed to save round: %w", err)
	}
	return &rec, nil
}

// Recent returns up to limit rounds, newest first
func (s *Service) Recent(limit int) ([]*Record, error) {
	dbRounds, err := s.db.ListRounds(limit)
	if err != nil {
		return nil, err
	}

	records := make([]*Record, len(dbRounds))
	for i, r := range dbRounds {
		records[i] = fromDBRound(r)
	}
	return records, nil
}

// Tally counts played and won rounds
func (s *Service) Tally() (Tally, error) {
	stats, err := s.db.RoundStats(OutcomeCorrect.String())
	if err != nil {
		return Tally{}, err
	}
	return Tally{Played: stats.Played, Won: stats.Won}, nil
}

func (r *Record) toDBRound() *database.Round {
	return &database.Round{
		ID:       r.ID,
		Model:    r.Model,
		Start:    r.Start,
		End:      r.End,
		Guess:    r.Guess,
		Drawn:    r.Drawn,
		Outcome:  r.Outcome.String(),
		Reply:    r.Reply,
		Attempts: r.Attempts,
		PlayedAt: r.PlayedAt,
	}
}

func fromDBRound(r *database.Round) *Record {
	return &Record{
		ID:       r.ID,
		Model:    r.Model,
		Start:    r.Start,
		End:      r.End,
		Guess:    r.Guess,
		Drawn:    r.Drawn,
		Outcome:  ParseOutcome(r.Outcome),
		Reply:    r.Reply,
		Attempts: r.Attempts,
		PlayedAt: r.PlayedAt,
	}
}
