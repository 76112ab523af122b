package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-engine/internal/config"
	"github.com/robalobadob/wordle-engine/internal/daily"
	"github.com/robalobadob/wordle-engine/internal/game"
	"github.com/robalobadob/wordle-engine/internal/render"
	"github.com/robalobadob/wordle-engine/internal/stats"
	"github.com/robalobadob/wordle-engine/internal/store"
	"github.com/robalobadob/wordle-engine/internal/words"
)

const hintCommand = "hint"

// errQuit ends the session when input runs out.
var errQuit = errors.New("input closed")

// Runner plays rounds of the terminal game.
type Runner struct {
	cfg         config.Game
	dict        *words.List
	in          *bufio.Scanner
	out         *render.Printer
	interactive bool
	log         zerolog.Logger

	game    *game.Game
	tally   *stats.Tally
	history *store.History
}

// NewRunner prepares a session: word lists and, if configured, the history file.
func NewRunner(cfg config.Game, in io.Reader, out io.Writer, interactive bool, logger zerolog.Logger) (*Runner, error) {
	dict, err := words.Load(cfg.FinalSet, cfg.AcceptableSet)
	if err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:         cfg,
		dict:        dict,
		in:          bufio.NewScanner(in),
		out:         render.New(out, interactive),
		interactive: interactive,
		log:         logger,
		tally:       stats.New(),
	}
	if cfg.State != "" {
		if r.history, err = store.LoadHistory(cfg.State); err != nil {
			return nil, err
		}
		for _, g := range r.history.Games {
			r.tally.Record(g.Guesses, g.Won())
		}
		r.log.Debug().Str("path", cfg.State).Int("rounds", len(r.history.Games)).Msg("history loaded")
	}
	return r, nil
}

// Run plays until the player quits, input ends or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if r.interactive {
		r.out.Line("Please enter your name: ", true)
		name, err := r.readLine()
		if err != nil {
			return nil
		}
		r.out.Line(fmt.Sprintf("Welcome to Wordle, %s!\n", name), false)
	}

	next, err := r.answers()
	if err != nil {
		return err
	}
	for round := 1; ; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		answer, err := next()
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		r.log.Debug().Int("round", round).Bool("difficult", r.cfg.Difficult).Msg("round started")

		if err := r.playRound(answer); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
		if r.cfg.Word != "" || !r.again() {
			return nil
		}
	}
}

// answers returns the source of secret words for the configured mode.
func (r *Runner) answers() (func() (string, error), error) {
	switch {
	case r.cfg.Word != "":
		w := words.Sanitize(r.cfg.Word)
		if !words.Valid(w) {
			return nil, fmt.Errorf("answer %q: %w", r.cfg.Word, game.ErrInvalidLength)
		}
		return func() (string, error) { return w, nil }, nil

	case r.cfg.Random:
		seq := daily.NewSequence(r.dict.Shuffled(r.cfg.Seed), r.cfg.Day)
		return func() (string, error) { return seq.Next(), nil }, nil

	default:
		return func() (string, error) {
			for {
				if r.interactive {
					r.out.Line("Input a word as the answer of this Wordle Game: ", false)
				}
				line, err := r.readLine()
				if err != nil {
					return "", err
				}
				if w := words.Sanitize(line); words.Valid(w) {
					return w, nil
				}
				r.out.Invalid(fmt.Sprintf("The answer must be %d letters.", game.WordLength))
			}
		}, nil
	}
}

func (r *Runner) playRound(answer string) error {
	if r.game == nil {
		r.game = game.New(answer, r.dict, r.cfg.Difficult)
	} else {
		r.game.Reset(answer)
	}
	g := r.game

	for !g.Finished {
		r.out.Prompt(g.TriesLeft())
		line, err := r.readLine()
		if err != nil {
			return err
		}
		guess := words.Sanitize(line)
		if r.interactive && guess == hintCommand {
			r.out.Hints(g.Hint())
			continue
		}
		if _, _, err := g.ApplyGuess(guess); err != nil {
			r.out.Invalid(reason(guess, err))
			continue
		}
		if r.interactive {
			r.out.Board(g)
		} else {
			r.out.Round(g)
		}
	}

	r.out.Outcome(g)
	r.tally.Record(g.Guesses, g.Won)
	if r.cfg.Stats {
		r.out.Stats(r.tally)
	}
	if r.history != nil {
		r.history.Append(g.Answer, g.Guesses)
		if err := r.history.Save(r.cfg.State); err != nil {
			return err
		}
	}
	r.log.Debug().Str("gameId", g.ID).Str("state", string(g.State())).Int("tries", len(g.Guesses)).Msg("round finished")
	return nil
}

// again asks whether to play another round; only "Y" continues.
func (r *Runner) again() bool {
	if r.interactive {
		r.out.Line("\nType in 'Y' to continue...\nType in 'N' to quit...", false)
	}
	line, err := r.readLine()
	return err == nil && strings.TrimSpace(line) == "Y"
}

func (r *Runner) readLine() (string, error) {
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return r.in.Text(), nil
}

// reason turns a rejected guess into the interactive message.
func reason(guess string, err error) string {
	switch {
	case errors.Is(err, game.ErrNotInWordList):
		return fmt.Sprintf("The word %s isn't in the Wordle dictionary.", strings.ToUpper(guess))
	case errors.Is(err, game.ErrDifficultMode):
		return "Please ensure that you follow the rules of difficult mode."
	case errors.Is(err, game.ErrInvalidLength), errors.Is(err, game.ErrInvalidAlphabet):
		return fmt.Sprintf("Your guess must be %d letters.", game.WordLength)
	default:
		return err.Error()
	}
}
