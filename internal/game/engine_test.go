package game

import (
	"errors"
	"slices"
	"testing"
)

type listDict []string

func (d listDict) IsAllowed(w string) bool { return slices.Contains(d, w) }
func (d listDict) Allowed() []string       { return d }

var testDict = listDict{"crane", "fight", "light", "might", "sight", "limit", "lints", "tight", "bight", "igloo", "mound"}

func TestApplyGuessWin(t *testing.T) {
	g := New("Light", testDict, false)
	if g.Answer != "light" || g.State() != StatePlaying || g.TriesLeft() != MaxTries {
		t.Fatalf("fresh game = %+v", g)
	}

	res, st, err := g.ApplyGuess("  IGLOO ")
	if err != nil {
		t.Fatalf("ApplyGuess(igloo) failed: %v", err)
	}
	if res.String() != "YYYRR" || st != StatePlaying {
		t.Fatalf("igloo = %s/%s", res, st)
	}

	res, st, err = g.ApplyGuess("light")
	if err != nil {
		t.Fatalf("ApplyGuess(light) failed: %v", err)
	}
	if !res.Solved() || st != StateWon || !g.Won || !g.Finished {
		t.Fatalf("light = %s/%s", res, st)
	}
	if !slices.Equal(g.Guesses, []string{"igloo", "light"}) || len(g.Results) != 2 {
		t.Fatalf("history = %v / %v", g.Guesses, g.Results)
	}

	_, _, err = g.ApplyGuess("crane")
	if !errors.Is(err, ErrFinished) {
		t.Fatalf("guess after win err = %v, want ErrFinished", err)
	}
}

func TestApplyGuessLoss(t *testing.T) {
	g := New("light", testDict, false)
	for i := 0; i < MaxTries; i++ {
		_, st, err := g.ApplyGuess("crane")
		if err != nil {
			t.Fatalf("guess %d failed: %v", i, err)
		}
		if i < MaxTries-1 && st != StatePlaying {
			t.Fatalf("guess %d state = %s", i, st)
		}
	}
	if g.State() != StateLost || g.TriesLeft() != 0 {
		t.Fatalf("state = %s, tries left %d", g.State(), g.TriesLeft())
	}
}

func TestApplyGuessValidation(t *testing.T) {
	cases := []struct {
		guess string
		want  error
	}{
		{"ligh", ErrInvalidLength},
		{"lig#t", ErrInvalidAlphabet},
		{"zzzzz", ErrNotInWordList},
	}
	for _, tc := range cases {
		t.Run(tc.guess, func(t *testing.T) {
			g := New("light", testDict, false)
			_, st, err := g.ApplyGuess(tc.guess)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			var ge *GuessError
			if !errors.As(err, &ge) {
				t.Fatalf("err %T is not a *GuessError", err)
			}
			if st != StatePlaying || len(g.Guesses) != 0 {
				t.Fatal("rejected guess changed the game")
			}
		})
	}
}

func TestDifficultMode(t *testing.T) {
	g := New("light", testDict, true)
	if _, _, err := g.ApplyGuess("limit"); err != nil {
		t.Fatalf("first guess failed: %v", err)
	}
	// limit confirms l, i and t; lints moves the t away.
	if _, _, err := g.ApplyGuess("lints"); !errors.Is(err, ErrDifficultMode) {
		t.Fatalf("lints err = %v, want ErrDifficultMode", err)
	}
	if _, _, err := g.ApplyGuess("fight"); !errors.Is(err, ErrDifficultMode) {
		t.Fatalf("fight err = %v, want ErrDifficultMode", err)
	}
	if _, st, err := g.ApplyGuess("light"); err != nil || st != StateWon {
		t.Fatalf("light = %s, %v", st, err)
	}

	easy := New("light", testDict, false)
	_, _, _ = easy.ApplyGuess("limit")
	if _, _, err := easy.ApplyGuess("lints"); err != nil {
		t.Fatalf("normal mode rejected lints: %v", err)
	}
}

func TestHintAndReset(t *testing.T) {
	g := New("light", testDict, false)
	if got := g.Hint(); !slices.Equal(got, testDict) {
		t.Fatalf("fresh hint = %v", got)
	}
	_, _, _ = g.ApplyGuess("fight")
	want := []string{"light", "might", "sight", "tight", "bight"}
	if got := g.Hint(); !slices.Equal(got, want) {
		t.Fatalf("hint = %v, want %v", got, want)
	}
	if g.Knowledge().Guesses != 1 {
		t.Fatalf("knowledge = %+v", g.Knowledge())
	}

	id := g.ID
	g.Reset("mound")
	if g.ID == id || g.Answer != "mound" || len(g.Guesses) != 0 || g.Finished {
		t.Fatalf("reset game = %+v", g)
	}
	if got := g.Hint(); !slices.Equal(got, testDict) {
		t.Fatalf("hint after reset = %v", got)
	}
}
