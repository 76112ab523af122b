// internal/game/engine.go
//
// Game engine for a single Wordle session.
// Responsibilities:
//   - Create games with fixed dimensions (6x5) and an optional difficult mode.
//   - Validate and apply guesses (length, alphabetic, dictionary, difficult rules).
//   - Score guesses with Evaluate and feed the Tracker.
//   - Track state transitions: playing → won/lost.
//   - Produce hint lists from the Tracker.
//
// A Game is not safe for concurrent use; callers serialise access.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// Dictionary is the word source a game validates guesses and builds hints from.
type Dictionary interface {
	IsAllowed(word string) bool
	Allowed() []string // ordered list used for hints
}

// Game holds the state of a single Wordle game session.
type Game struct {
	ID        string   // Unique game identifier (random hex string).
	Answer    string   // The secret word (always lowercase).
	Rows      int      // Maximum number of guesses allowed.
	Cols      int      // Number of letters per word.
	Difficult bool     // Reject guesses that ignore known letters.
	Guesses   []string // Accepted guesses so far (lowercased).
	Results   []Result // Feedback per accepted guess.
	Finished  bool     // True once the game is over (won or lost).
	Won       bool     // True if the game was finished with a win.

	dict    Dictionary
	tracker *Tracker
}

// New constructs a game for answer.
func New(answer string, dict Dictionary, difficult bool) *Game {
	g := &Game{
		Rows:      MaxTries,
		Cols:      WordLength,
		Difficult: difficult,
		dict:      dict,
		tracker:   NewTracker(),
	}
	g.Reset(answer)
	return g
}

// Reset starts a new secret on the same session.
func (g *Game) Reset(answer string) {
	g.ID = randomID()
	g.Answer = strings.ToLower(strings.TrimSpace(answer))
	g.Guesses = []string{}
	g.Results = []Result{}
	g.Finished, g.Won = false, false
	g.tracker.Reset()
}

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the per-letter marks, the new state, or an error.
//
// Validation rules, in order:
//   - Game must not be finished.
//   - Guess must be exactly g.Cols letters a–z.
//   - Guess must be in the dictionary.
//   - In difficult mode the guess must keep confirmed letters and known counts.
//
// State transitions:
//   - All marks exact → Finished, Won.
//   - Else if the number of guesses reaches g.Rows → Finished (loss).
func (g *Game) ApplyGuess(guess string) (Result, State, error) {
	var res Result
	if g.Finished {
		return res, g.State(), rejectf(ErrFinished, "")
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if err := validateWord(guess); err != nil {
		return res, g.State(), err
	}
	if g.dict != nil && !g.dict.IsAllowed(guess) {
		return res, g.State(), rejectf(ErrNotInWordList, guess)
	}
	if g.Difficult && !g.tracker.IsConsistent(guess) {
		return res, g.State(), rejectf(ErrDifficultMode, guess)
	}

	res, err := Evaluate(g.Answer, guess)
	if err != nil {
		return res, g.State(), err
	}
	if err := g.tracker.Update(guess, res); err != nil {
		return res, g.State(), err
	}
	g.Guesses = append(g.Guesses, guess)
	g.Results = append(g.Results, res)

	if res.Solved() {
		g.Finished, g.Won = true, true
	} else if len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return res, g.State(), nil
}

// State reports the coarse game state.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// TriesLeft is the number of guesses still accepted.
func (g *Game) TriesLeft() int { return g.Rows - len(g.Guesses) }

// Hint lists the dictionary words still consistent with everything learned.
func (g *Game) Hint() []string {
	if g.dict == nil {
		return []string{}
	}
	return g.tracker.FilterCandidates(g.dict.Allowed())
}

// Tracker exposes the game's knowledge for rendering.
func (g *Game) Tracker() *Tracker { return g.tracker }

// Knowledge is a snapshot of the tracker.
func (g *Game) Knowledge() Knowledge { return g.tracker.Snapshot() }

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
