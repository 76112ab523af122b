package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLength   = errors.New("invalid length")
	ErrInvalidAlphabet = errors.New("invalid alphabet")
	ErrFinished        = errors.New("game finished")
	ErrNotInWordList   = errors.New("not in word list")
	ErrDifficultMode   = errors.New("violates difficult mode")
)

// GuessError wraps a rejected guess together with the kind of rejection.
type GuessError struct {
	Kind  error
	Guess string
}

func (e *GuessError) Error() string {
	if e == nil {
		return ""
	}
	if e.Guess == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %q", e.Kind.Error(), e.Guess)
}

func (e *GuessError) Unwrap() error { return e.Kind }

func rejectf(kind error, guess string) error {
	return &GuessError{Kind: kind, Guess: guess}
}

// validateWord checks the fixed length and the a–z alphabet.
func validateWord(w string) error {
	if len(w) != WordLength {
		return rejectf(ErrInvalidLength, w)
	}
	if !isAlpha(w) {
		return rejectf(ErrInvalidAlphabet, w)
	}
	return nil
}
