package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/robalobadob/wordle-engine/internal/config"
)

const (
	ExitSuccess       = 0
	ExitInvalidUsage  = 2
	ExitConfigError   = 3
	ExitInternalError = 4
)

// UsageError is a bad command line; Message is meant for the user.
type UsageError struct {
	ExitCode int
	Message  string
}

func (e *UsageError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func usageErrorf(code int, format string, args ...any) error {
	return &UsageError{ExitCode: code, Message: fmt.Sprintf(format, args...)}
}

// ParseArgs turns command-line arguments into a validated game config.
//
// A config file named by -c/--config is read first; flags that were set
// explicitly override its values.
func ParseArgs(args []string, stderr io.Writer) (config.Game, error) {
	fs := flag.NewFlagSet("wordle", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		cfgPath, word, finalSet, acceptableSet, state string
		random, difficult, showStats                  bool
		day                                           int
		seed                                          int64
	)
	def := config.DefaultGame()

	stringVar := func(p *string, short, long, usage string) {
		fs.StringVar(p, short, "", usage)
		fs.StringVar(p, long, "", usage)
	}
	boolVar := func(p *bool, short, long, usage string) {
		fs.BoolVar(p, short, false, usage)
		fs.BoolVar(p, long, false, usage)
	}
	stringVar(&cfgPath, "c", "config", "JSON config file")
	stringVar(&word, "w", "word", "play a single game with this answer")
	boolVar(&random, "r", "random", "pick answers from the final list")
	boolVar(&difficult, "D", "difficult", "guesses must keep every revealed hint")
	boolVar(&showStats, "t", "stats", "print statistics after each game")
	fs.IntVar(&day, "d", def.Day, "first day of the random sequence (1-based)")
	fs.IntVar(&day, "day", def.Day, "first day of the random sequence (1-based)")
	fs.Int64Var(&seed, "s", def.Seed, "seed for the random sequence")
	fs.Int64Var(&seed, "seed", def.Seed, "seed for the random sequence")
	stringVar(&finalSet, "f", "final-set", "answers word list file")
	stringVar(&acceptableSet, "a", "acceptable-set", "accepted guesses word list file")
	stringVar(&state, "S", "state", "JSON game history file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return def, err
		}
		return def, usageErrorf(ExitInvalidUsage, "%v", err)
	}
	if fs.NArg() > 0 {
		return def, usageErrorf(ExitInvalidUsage, "unexpected arguments: %v", fs.Args())
	}

	cfg := def
	if cfgPath != "" {
		var err error
		if cfg, err = config.LoadFile(cfgPath); err != nil {
			return def, usageErrorf(ExitConfigError, "%v", err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w", "word":
			cfg.Word = word
		case "r", "random":
			cfg.Random = random
		case "D", "difficult":
			cfg.Difficult = difficult
		case "t", "stats":
			cfg.Stats = showStats
		case "d", "day":
			cfg.Day = day
		case "s", "seed":
			cfg.Seed = seed
		case "f", "final-set":
			cfg.FinalSet = finalSet
		case "a", "acceptable-set":
			cfg.AcceptableSet = acceptableSet
		case "S", "state":
			cfg.State = state
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, usageErrorf(ExitInvalidUsage, "%v", err)
	}
	return cfg, nil
}
