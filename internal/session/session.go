package session

// Outcome is the verdict of a resolved round.
type Outcome int

const (
	OutcomeUnset Outcome = iota
	OutcomeCorrect
	OutcomeIncorrect
)

// String returns the literal text sent to the chat model as the user message.
func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "Correct"
	case OutcomeIncorrect:
		return "Incorrect"
	}
	return ""
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) Outcome {
	switch s {
	case "Correct":
		return OutcomeCorrect
	case "Incorrect":
		return OutcomeIncorrect
	}
	return OutcomeUnset
}

// Session is the ephemeral per-round state of a game. The score survives
// across rounds for the lifetime of the process; everything else is reset
// when a round starts.
type Session struct {
	RangeText string
	GuessText string
	Outcome   Outcome
	Drawn     uint64
	Score     uint
	Reply     string

	// Processing is set while the round is being resolved.
	Processing bool
	// Invalid is set when the last submit failed validation.
	Invalid bool
}

// StartRound clears the round fields, keeping the score.
func (s *Session) StartRound() {
	s.RangeText = ""
	s.GuessText = ""
	s.Outcome = OutcomeUnset
	s.Drawn = 0
	s.Reply = ""
	s.Processing = false
	s.Invalid = false
}
