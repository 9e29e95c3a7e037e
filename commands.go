package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"chessBattle/game"
	"chessBattle/logging"
	"chessBattle/match"
	"chessBattle/server"
	"chessBattle/spectate"
	"chessBattle/term"
)

// runLoop drives m in the background. The returned func cancels the move
// timer and waits for the loop to stop.
func runLoop(ctx context.Context, m *match.Match, f *matchFlags) func() {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := m.Run(ctx, f.interval); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("match loop")
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

func fail(err error) subcommands.ExitStatus {
	log.Error().Err(err).Msg("failed")
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

type guiCommand struct {
	matchFlags
}

func (*guiCommand) Name() string     { return "gui" }
func (*guiCommand) Synopsis() string { return "Watch two bots play in a desktop window" }
func (*guiCommand) Usage() string {
	return `gui [flags]

Keys: T toggles the theme, PgUp/PgDn or the wheel scroll the history, Esc quits.
`
}

func (c *guiCommand) Execute(ctx context.Context, flags *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	theme, err := c.parseTheme()
	if err != nil {
		return fail(err)
	}
	m, closer, err := c.setup("")
	if err != nil {
		return fail(err)
	}
	defer closer.Close()

	stop := runLoop(ctx, m, &c.matchFlags)
	defer stop()
	if err := game.Run(ctx, m, theme, logging.Component("gui")); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type termCommand struct {
	matchFlags
}

func (*termCommand) Name() string     { return "term" }
func (*termCommand) Synopsis() string { return "Watch two bots play in the terminal" }
func (*termCommand) Usage() string {
	return `term [flags]

Keys: t toggles the theme, arrows/PgUp/PgDn scroll the history, q quits.
Logs go to ./chessbattle.log unless -log is set.
`
}

func (c *termCommand) Execute(ctx context.Context, flags *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	theme, err := c.parseTheme()
	if err != nil {
		return fail(err)
	}
	m, closer, err := c.setup("chessbattle.log")
	if err != nil {
		return fail(err)
	}
	defer closer.Close()

	stop := runLoop(ctx, m, &c.matchFlags)
	defer stop()
	if err := term.Run(ctx, m, theme, logging.Component("term")); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type serveCommand struct {
	matchFlags
	addr    string
	sshAddr string
	hostKey string
}

func (*serveCommand) Name() string     { return "serve" }
func (*serveCommand) Synopsis() string { return "Play a match and publish it over HTTP and SSH" }
func (*serveCommand) Usage() string {
	return `serve [flags]

Serves GET /state, /pgn and /board. With -ssh, spectators can also follow the
game with a plain ssh client.
`
}

func (c *serveCommand) SetFlags(flags *flag.FlagSet) {
	c.matchFlags.SetFlags(flags)
	flags.StringVar(&c.addr, "addr", c.cfg.Server.Addr, "HTTP listen address")
	flags.StringVar(&c.sshAddr, "ssh", c.cfg.SSH.Addr, "SSH listen address, empty to disable")
	flags.StringVar(&c.hostKey, "host-key", c.cfg.SSH.HostKey, "SSH host key file, empty for an ephemeral key")
}

func (c *serveCommand) Execute(ctx context.Context, flags *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, closer, err := c.setup("")
	if err != nil {
		return fail(err)
	}
	defer closer.Close()

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		err := m.Run(ctx, c.interval)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	grp.Go(func() error {
		return server.New(m, logging.Component("http")).Start(ctx, c.addr)
	})
	if c.sshAddr != "" {
		spectators, err := spectate.New(c.sshAddr, c.hostKey, m, logging.Component("ssh"))
		if err != nil {
			return fail(err)
		}
		grp.Go(func() error { return spectators.Start(ctx) })
	}

	if err := grp.Wait(); err != nil {
		return fail(err)
	}
	return subcommands.ExitSuccess
}

type headlessCommand struct {
	matchFlags
	pgn bool
}

func (*headlessCommand) Name() string     { return "headless" }
func (*headlessCommand) Synopsis() string { return "Play a match and print the moves to stdout" }
func (*headlessCommand) Usage() string {
	return `headless [flags]
`
}

func (c *headlessCommand) SetFlags(flags *flag.FlagSet) {
	c.matchFlags.SetFlags(flags)
	flags.BoolVar(&c.pgn, "pgn", false, "print the PGN when the game ends")
}

func (c *headlessCommand) Execute(ctx context.Context, flags *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	m, closer, err := c.setup("")
	if err != nil {
		return fail(err)
	}
	defer closer.Close()

	views, cancel := m.Subscribe()
	defer cancel()
	stop := runLoop(ctx, m, &c.matchFlags)
	defer stop()

	out := color.Output
	fmt.Fprintf(out, "%s: %s vs %s\n", m.Name(), c.white, c.black)
	printed := 0
	for {
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case v := <-views:
			printed = printMoves(out, v, printed)
			if !v.Over() {
				continue
			}
			color.New(color.FgYellow, color.Bold).Fprintln(out, v.Status())
			if c.pgn {
				fmt.Fprintln(out, m.PGN())
			}
			return subcommands.ExitSuccess
		}
	}
}

var (
	whiteMove = color.New(color.FgHiWhite, color.Bold)
	blackMove = color.New(color.FgCyan)
)

// printMoves writes the moves of v from index from on and returns how many
// moves have been printed in total.
func printMoves(w io.Writer, v match.View, from int) int {
	for i := from; i < len(v.Moves); i++ {
		side := moverOf(v, i)
		c := whiteMove
		if side == "Black" {
			c = blackMove
		}
		c.Fprintf(w, "%4d %-5s %s\n", i+1, side, v.Moves[i])
	}
	return len(v.Moves)
}

// moverOf works out who played move i from the side to move now.
func moverOf(v match.View, i int) string {
	other := map[string]string{"White": "Black", "Black": "White"}
	lastMover := other[v.Turn]
	if (len(v.Moves)-1-i)%2 == 0 {
		return lastMover
	}
	return v.Turn
}
