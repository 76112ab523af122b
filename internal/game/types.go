// internal/game/types.go
//
// Core type definitions for the Wordle engine.
// Defines:
//   - Mark: per-letter classification of a guess (exact/present/absent).
//   - Result: the ordered marks for one guess.
//   - LetterStatus: best knowledge about a letter across a game.
//   - State: coarse game state (playing/won/lost).

package game

const (
	WordLength   = 5  // letters per word
	MaxTries     = 6  // guesses allowed per secret
	AlphabetSize = 26 // a–z
)

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "exact":   letter is in the secret at this position.
//   - "present": letter is in the secret elsewhere and an unmatched occurrence remains.
//   - "absent":  letter is not in the secret, or all its occurrences are accounted for.
type Mark string

const (
	MarkExact   Mark = "exact"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// Code is the one-letter form used by the plain display (G/Y/R).
func (m Mark) Code() byte {
	switch m {
	case MarkExact:
		return 'G'
	case MarkPresent:
		return 'Y'
	default:
		return 'R'
	}
}

// Result is the per-position feedback for one guess.
type Result [WordLength]Mark

// Solved reports whether every position is exact.
func (r Result) Solved() bool {
	for _, m := range r {
		if m != MarkExact {
			return false
		}
	}
	return true
}

// String renders the result as a code line, e.g. "GYRRR".
func (r Result) String() string {
	b := make([]byte, WordLength)
	for i, m := range r {
		b[i] = m.Code()
	}
	return string(b)
}

// LetterStatus is ordered by informativeness: a higher value dominates a lower one.
type LetterStatus uint8

const (
	StatusUnknown LetterStatus = iota
	StatusAbsent
	StatusPresent
	StatusConfirmed
)

// Code is the one-letter form used by the plain alphabet display (X/R/Y/G).
func (s LetterStatus) Code() byte {
	switch s {
	case StatusAbsent:
		return 'R'
	case StatusPresent:
		return 'Y'
	case StatusConfirmed:
		return 'G'
	default:
		return 'X'
	}
}

func (s LetterStatus) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusPresent:
		return "present"
	case StatusConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// MarshalText lets statuses appear by name in JSON.
func (s LetterStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// State is the coarse lifecycle of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Finished reports whether no more guesses are accepted.
func (s State) Finished() bool { return s == StateWon || s == StateLost }
