// Package render draws guesses, the alphabet state and statistics for the
// terminal game, either as ANSI-coloured tiles or as plain code lines.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/vyevs/ansi"

	"github.com/robalobadob/wordle-engine/internal/game"
	"github.com/robalobadob/wordle-engine/internal/stats"
)

// Colour names understood by ansi.FGColorName.
const (
	red    = "red"
	green  = "green"
	yellow = "yellow"
	cyan   = "cyan"
)

// Printer writes game output in one of the two display styles.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer; color selects the interactive tile style.
func New(w io.Writer, color bool) *Printer { return &Printer{w: w, color: color} }

// Color reports whether the printer draws tiles.
func (p *Printer) Color() bool { return p.color }

func (p *Printer) paint(color, s string) string {
	if !p.color || color == "" {
		return s
	}
	return ansi.FGColorName(color) + s + ansi.Clear
}

func markColor(m game.Mark) string {
	switch m {
	case game.MarkExact:
		return green
	case game.MarkPresent:
		return yellow
	default:
		return red
	}
}

func statusColor(s game.LetterStatus) string {
	switch s {
	case game.StatusConfirmed:
		return green
	case game.StatusPresent:
		return yellow
	case game.StatusAbsent:
		return red
	default:
		return ""
	}
}

// Guess writes one scored guess: upper-case tiles, or the code line.
func (p *Printer) Guess(guess string, res game.Result) {
	if !p.color {
		fmt.Fprint(p.w, res.String())
		return
	}
	for i := 0; i < len(guess) && i < game.WordLength; i++ {
		fmt.Fprint(p.w, p.paint(markColor(res[i]), strings.ToUpper(guess[i:i+1])))
	}
}

// Board writes every guess of g, numbered, followed by the alphabet state.
func (p *Printer) Board(g *game.Game) {
	for i, w := range g.Guesses {
		fmt.Fprintf(p.w, "%d: ", i+1)
		p.Guess(w, g.Results[i])
		fmt.Fprintln(p.w)
	}
	fmt.Fprintln(p.w, "The state of all letters are shown below: ")
	p.Alphabet(g.Tracker().Statuses())
	fmt.Fprintln(p.w)
}

// Alphabet writes the 26 letter states: coloured A–Z, or X/R/Y/G codes.
func (p *Printer) Alphabet(statuses [game.AlphabetSize]game.LetterStatus) {
	var b strings.Builder
	for c, s := range statuses {
		if !p.color {
			b.WriteByte(s.Code())
			continue
		}
		b.WriteString(p.paint(statusColor(s), string(rune('A'+c))))
		b.WriteByte(' ')
	}
	fmt.Fprint(p.w, b.String())
}

// Round writes the plain-mode line for one guess: codes, a space, alphabet codes.
func (p *Printer) Round(g *game.Game) {
	last := len(g.Results) - 1
	if last < 0 {
		return
	}
	p.Guess(g.Guesses[last], g.Results[last])
	fmt.Fprint(p.w, " ")
	p.Alphabet(g.Tracker().Statuses())
	fmt.Fprintln(p.w)
}

// Prompt asks for the next guess (interactive only).
func (p *Printer) Prompt(triesLeft int) {
	if p.color {
		fmt.Fprintln(p.w, p.paint(cyan, fmt.Sprintf("Enter your guess (%d letters) and press ENTER: %d tries left", game.WordLength, triesLeft)))
	}
}

// Invalid reports a rejected input line.
func (p *Printer) Invalid(msg string) {
	if !p.color {
		fmt.Fprintln(p.w, "INVALID")
		return
	}
	fmt.Fprintln(p.w, p.paint(red, "INVALID! "+msg))
}

// Outcome reports the end of a round.
func (p *Printer) Outcome(g *game.Game) {
	n := len(g.Guesses)
	switch {
	case g.Won && p.color:
		fmt.Fprintf(p.w, "CORRECT! You guessed the word in %d tries.\n", n)
	case g.Won:
		fmt.Fprintf(p.w, "CORRECT %d\n", n)
	case p.color:
		fmt.Fprintln(p.w, p.paint(red, fmt.Sprintf("SHAME! You ran out of tries! The word was %s", strings.ToUpper(g.Answer))))
	default:
		fmt.Fprintf(p.w, "FAILED %s\n", strings.ToUpper(g.Answer))
	}
}

// Hints lists candidate words.
func (p *Printer) Hints(words []string) {
	fmt.Fprintf(p.w, "Here are %d possible words to solve the Wordle game:\n\n", len(words))
	for _, w := range words {
		fmt.Fprintln(p.w, strings.ToUpper(w))
	}
	fmt.Fprintln(p.w)
}

// Stats writes "wins losses average" and then the most used words.
func (p *Printer) Stats(t *stats.Tally) {
	fmt.Fprintf(p.w, "%d %d %.2f\n", t.Wins, t.Losses, t.AverageTries())
	top := t.Top(stats.TopN)
	parts := make([]string, 0, len(top))
	for _, wc := range top {
		parts = append(parts, fmt.Sprintf("%s %d", strings.ToUpper(wc.Word), wc.Count))
	}
	fmt.Fprintln(p.w, strings.Join(parts, " "))
}

// Line writes a message, highlighted in interactive mode when emphasised.
func (p *Printer) Line(msg string, emphasis bool) {
	if emphasis {
		msg = p.paint(cyan, msg)
	}
	fmt.Fprintln(p.w, msg)
}
