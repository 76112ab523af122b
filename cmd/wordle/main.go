// Command wordle is the terminal game.
//
// When stdout is a terminal it plays interactively with coloured tiles;
// otherwise it reads plain lines and prints compact result codes, which
// makes it scriptable.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-engine/internal/cli"
)

func main() {
	cfg, err := cli.ParseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(cli.ExitSuccess)
		}
		var ue *cli.UsageError
		if errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr, ue.Message)
			os.Exit(ue.ExitCode)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitInternalError)
	}

	interactive := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	level := zerolog.WarnLevel
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && os.Getenv("LOG_LEVEL") != "" {
		level = lvl
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: colorable.NewColorableStderr(), NoColor: !interactive}).
		Level(level).With().Timestamp().Logger()

	out := colorable.NewColorableStdout()
	if !interactive {
		out = colorable.NewNonColorable(os.Stdout)
	}

	runner, err := cli.NewRunner(cfg, os.Stdin, out, interactive, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to start")
		os.Exit(cli.ExitConfigError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("game aborted")
		os.Exit(cli.ExitInternalError)
	}
}
