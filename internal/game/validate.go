package game

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrRangeSyntax     = errors.New("range must look like n..m")
	ErrGuessSyntax     = errors.New("guess must be a non-negative integer")
	ErrEmptyRange      = errors.New("range start must be lower than its end")
	ErrGuessOutOfRange = errors.New("guess is outside the range")
)

var (
	rangePattern = regexp.MustCompile(`^\d+\.\.\d+$`)
	guessPattern = regexp.MustCompile(`^\d+$`)
)

// Round holds the parsed, validated input of one round.
type Round struct {
	Start uint64
	End   uint64
	Guess uint64
}

// ParseRound validates the raw range and guess texts. The range must be two
// non-negative integers separated by "..", with Start < End, and the guess
// must lie in [Start, End]. Numbers that overflow uint64 are syntax errors.
func ParseRound(rangeText, guessText string) (Round, error) {
	if !rangePattern.MatchString(rangeText) {
		return Round{}, ErrRangeSyntax
	}
	if !guessPattern.MatchString(guessText) {
		return Round{}, ErrGuessSyntax
	}

	startText, endText, _ := strings.Cut(rangeText, "..")
	start, err := strconv.ParseUint(startText, 10, 64)
	if err != nil {
		return Round{}, fmt.Errorf("%w: %v", ErrRangeSyntax, err)
	}
	end, err := strconv.ParseUint(endText, 10, 64)
	if err != nil {
		return Round{}, fmt.Errorf("%w: %v", ErrRangeSyntax, err)
	}
	guess, err := strconv.ParseUint(guessText, 10, 64)
	if err != nil {
		return Round{}, fmt.Errorf("%w: %v", ErrGuessSyntax, err)
	}

	if start >= end {
		return Round{}, ErrEmptyRange
	}
	if guess < start || guess > end {
		return Round{}, ErrGuessOutOfRange
	}
	return Round{Start: start, End: end, Guess: guess}, nil
}

// Validate reports whether the range and guess texts are acceptable.
func Validate(rangeText, guessText string) bool {
	_, err := ParseRound(rangeText, guessText)
	return err == nil
}
