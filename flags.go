package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chessBattle/bots"
	"chessBattle/config"
	"chessBattle/logging"
	"chessBattle/match"
	"chessBattle/ui"
)

// matchFlags are shared by every command that plays a match. Defaults come
// from the environment.
type matchFlags struct {
	cfg *config.Configuration

	interval time.Duration
	white    string
	black    string
	seed     int64
	fen      string
	halt     bool
	claim    bool
	theme    string
	logLevel string
	logFile  string
}

func (f *matchFlags) SetFlags(flags *flag.FlagSet) {
	names := strings.Join(bots.Names(), ", ")
	flags.DurationVar(&f.interval, "interval", f.cfg.Match.Interval, "time between moves")
	flags.StringVar(&f.white, "white", f.cfg.Match.White, "bot playing White ("+names+")")
	flags.StringVar(&f.black, "black", f.cfg.Match.Black, "bot playing Black ("+names+")")
	flags.Int64Var(&f.seed, "seed", f.cfg.Match.Seed, "random seed, 0 picks one from the clock")
	flags.StringVar(&f.fen, "fen", f.cfg.Match.StartFEN, "starting position, empty for the standard one")
	flags.BoolVar(&f.halt, "halt", f.cfg.Match.HaltOnGameOver, "stop the move timer once the game is over")
	flags.BoolVar(&f.claim, "claim-draws", f.cfg.Match.ClaimDraws, "end the game on threefold repetition and the fifty-move rule")
	flags.StringVar(&f.theme, "theme", f.cfg.UI.Theme, "initial theme (light, dark)")
	flags.StringVar(&f.logLevel, "log-level", f.cfg.Log.Level, "log level")
	flags.StringVar(&f.logFile, "log", f.cfg.Log.File, "log file, empty for stderr")
}

// setup initialises logging and builds the match. fallbackLog is used when
// no log file was configured.
func (f *matchFlags) setup(fallbackLog string) (*match.Match, io.Closer, error) {
	file := f.logFile
	if file == "" {
		file = fallbackLog
	}
	closer, err := logging.Init(f.logLevel, file)
	if err != nil {
		return nil, nil, err
	}

	if f.interval <= 0 {
		closer.Close()
		return nil, nil, fmt.Errorf("interval must be positive, got %s", f.interval)
	}
	m, err := f.newMatch(logging.Component("match"))
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	return m, closer, nil
}

func (f *matchFlags) newMatch(logger zerolog.Logger) (*match.Match, error) {
	blackSeed := f.seed
	if blackSeed != 0 {
		blackSeed++
	}
	white, err := bots.New(f.white, f.seed)
	if err != nil {
		return nil, fmt.Errorf("white: %w", err)
	}
	black, err := bots.New(f.black, blackSeed)
	if err != nil {
		return nil, fmt.Errorf("black: %w", err)
	}
	return match.New(match.Options{
		StartFEN:       f.fen,
		White:          white,
		Black:          black,
		ClaimDraws:     f.claim,
		HaltOnGameOver: f.halt,
		Logger:         logger,
	})
}

func (f *matchFlags) parseTheme() (ui.Theme, error) {
	return ui.ParseTheme(f.theme)
}
